package models

import (
	"time"
)

// ItemCategory enum
type ItemCategory string

const (
	CategoryFood     ItemCategory = "Food"
	CategoryClothing ItemCategory = "Clothing"
	CategoryMedicine ItemCategory = "Medicine"
	CategoryHygiene  ItemCategory = "Hygiene"
	CategoryShelter  ItemCategory = "Shelter"
	CategoryOthers   ItemCategory = "Others"
)

// Valid reports whether the category is one of the known values
func (c ItemCategory) Valid() bool {
	switch c {
	case CategoryFood, CategoryClothing, CategoryMedicine, CategoryHygiene, CategoryShelter, CategoryOthers:
		return true
	}
	return false
}

// RequestStatus enum
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestDenied   RequestStatus = "denied"
)

// NotificationType enum
type NotificationType string

const (
	NotificationNewUser      NotificationType = "new_user"
	NotificationLowStock     NotificationType = "low_stock"
	NotificationDistribution NotificationType = "distribution"
	NotificationUpdate       NotificationType = "update"
)

// InventoryItem model - a named, categorized stock of relief goods.
// Quantity never goes negative; all mutation goes through the inventory service.
type InventoryItem struct {
	ID       uint         `gorm:"primaryKey" json:"id"`
	Name     string       `gorm:"column:name;uniqueIndex:idx_item_name_category;not null" json:"name"`
	Category ItemCategory `gorm:"column:category;uniqueIndex:idx_item_name_category;not null" json:"category"`
	Quantity int          `gorm:"column:quantity;not null;default:0" json:"quantity"`

	CreatedAt time.Time `gorm:"column:created_at;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`

	Distributions []ReliefDistribution `gorm:"foreignKey:ItemID" json:"distributions,omitempty"`
}

func (InventoryItem) TableName() string {
	return "inventory_items"
}

// ReliefRequest model - a family head's ask for aid, reviewed by an admin.
// Status moves pending -> approved | denied; a user has at most one pending request.
type ReliefRequest struct {
	ID     uint  `gorm:"primaryKey" json:"id"`
	UserID uint  `gorm:"column:user_id;index;not null" json:"userId"`
	User   *User `gorm:"foreignKey:UserID" json:"user,omitempty"`

	ReliefType string        `gorm:"column:relief_type;not null" json:"reliefType"`
	Status     RequestStatus `gorm:"column:status;default:pending;index" json:"status"`
	Notes      string        `gorm:"column:notes;not null" json:"notes"`
	AdminNotes *string       `gorm:"column:admin_notes" json:"adminNotes,omitempty"`

	ReviewedByID *uint      `gorm:"column:reviewed_by_id" json:"reviewedById,omitempty"`
	ReviewedBy   *User      `gorm:"foreignKey:ReviewedByID" json:"reviewedBy,omitempty"`
	RequestDate  time.Time  `gorm:"column:request_date;default:CURRENT_TIMESTAMP;index" json:"requestDate"`
	ReviewedDate *time.Time `gorm:"column:reviewed_date" json:"reviewedDate,omitempty"`

	// Settable only after approval; tracking flag, does not itself move inventory
	ReliefGiven bool `gorm:"column:relief_given;default:false" json:"reliefGiven"`

	CreatedAt time.Time `gorm:"column:created_at;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (ReliefRequest) TableName() string {
	return "relief_requests"
}

// ReliefDistribution model - an append-only record of goods handed to a household,
// created in the same transaction as the inventory decrement
type ReliefDistribution struct {
	ID     uint  `gorm:"primaryKey" json:"id"`
	UserID uint  `gorm:"column:user_id;index;not null" json:"userId"`
	User   *User `gorm:"foreignKey:UserID" json:"user,omitempty"`

	ItemID uint           `gorm:"column:item_id;index;not null" json:"itemId"`
	Item   *InventoryItem `gorm:"foreignKey:ItemID" json:"item,omitempty"`

	QuantityDistributed int     `gorm:"column:quantity_distributed;not null" json:"quantityDistributed"`
	DistributedByID     *uint   `gorm:"column:distributed_by_id" json:"distributedById,omitempty"`
	DistributedBy       *User   `gorm:"foreignKey:DistributedByID" json:"distributedBy,omitempty"`
	Notes               *string `gorm:"column:notes" json:"notes,omitempty"`

	DistributionDate time.Time `gorm:"column:distribution_date;default:CURRENT_TIMESTAMP;index" json:"distributionDate"`
}

func (ReliefDistribution) TableName() string {
	return "relief_distributions"
}

// Notification model - derived alerts created as side effects of other writes,
// never directly by a user-facing action
type Notification struct {
	ID      uint             `gorm:"primaryKey" json:"id"`
	Type    NotificationType `gorm:"column:type;index" json:"type"`
	Title   string           `gorm:"column:title" json:"title"`
	Message string           `gorm:"column:message" json:"message"`
	IsRead  bool             `gorm:"column:is_read;default:false;index" json:"isRead"`

	// References are cleared, not cascaded, when the user or item goes away:
	// the notification text is history worth keeping
	RelatedUserID *uint `gorm:"column:related_user_id" json:"relatedUserId,omitempty"`
	RelatedUser   *User `gorm:"foreignKey:RelatedUserID;constraint:OnDelete:SET NULL" json:"relatedUser,omitempty"`

	// Dedup key for low_stock alerts: one unread alert per item
	RelatedItemID *uint          `gorm:"column:related_item_id;index" json:"relatedItemId,omitempty"`
	RelatedItem   *InventoryItem `gorm:"foreignKey:RelatedItemID;constraint:OnDelete:SET NULL" json:"relatedItem,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;default:CURRENT_TIMESTAMP;index" json:"createdAt"`
}

func (Notification) TableName() string {
	return "notifications"
}

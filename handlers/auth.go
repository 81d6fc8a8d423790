package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/myrelief/backend/database"
	"github.com/myrelief/backend/models"
	"github.com/myrelief/backend/services"
	"github.com/myrelief/backend/storage"
	"golang.org/x/crypto/bcrypt"
)

var jwtSecret = []byte(os.Getenv("JWT_SECRET"))

func init() {
	if len(jwtSecret) == 0 {
		jwtSecret = []byte("default-dev-secret-change-me")
	}
}

var storageClient *storage.Client

// SetStorageClient wires the identity-proof storage collaborator. A nil
// client disables uploads.
func SetStorageClient(c *storage.Client) {
	storageClient = c
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// validContact checks the fixed-format contact number: digits only, 11 characters
func validContact(contact string) bool {
	if len(contact) != 11 {
		return false
	}
	for _, r := range contact {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Register handles family-head registration with an optional identity proof
// upload. An upload failure is non-fatal: the account is still created and the
// response carries a warning.
// POST /api/auth/register (multipart/form-data)
func Register(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")
	firstName := strings.TrimSpace(c.PostForm("firstname"))
	lastName := strings.TrimSpace(c.PostForm("lastname"))
	middleName := strings.TrimSpace(c.PostForm("middlename"))
	address := strings.TrimSpace(c.PostForm("address"))
	city := strings.TrimSpace(c.PostForm("city"))
	barangay := strings.TrimSpace(c.PostForm("barangay"))
	contact := strings.TrimSpace(c.PostForm("contact"))

	if username == "" || password == "" || firstName == "" || lastName == "" ||
		address == "" || city == "" || barangay == "" || contact == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields except middle name are required"})
		return
	}
	if !validContact(contact) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Contact must be exactly 11 digits"})
		return
	}

	var existing int64
	database.DB.Model(&models.User{}).Where("username = ?", username).Count(&existing)
	if existing > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Username is already taken"})
		return
	}

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := models.User{
		Username:     username,
		PasswordHash: string(hashedBytes),
		Role:         models.RoleFamilyHead,
		FirstName:    firstName,
		LastName:     lastName,
		Address:      address,
		City:         city,
		Barangay:     barangay,
		Contact:      contact,
	}
	if middleName != "" {
		user.MiddleName = &middleName
	}

	// Identity proof is optional and its upload is best-effort
	var uploadWarning string
	if fileHeader, err := c.FormFile("id_proof"); err == nil && storageClient != nil {
		url, err := uploadIDProof(c.Request.Context(), username, fileHeader)
		if err != nil {
			log.Printf("⚠️ ID proof upload failed for %s: %v", username, err)
			uploadWarning = "Identity proof upload failed; you can re-upload it later"
		} else {
			user.IDProofURL = &url
		}
	}

	if err := services.CreateUser(database.DB, &user); err != nil {
		if errors.Is(err, services.ErrUsernameTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "Username is already taken"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	if n, err := services.NotifyNewUser(database.DB, &user); err != nil {
		log.Printf("⚠️ Failed to record new_user notification: %v", err)
	} else {
		services.Broadcast(n)
	}

	response := gin.H{"user": user}
	if uploadWarning != "" {
		response["warning"] = uploadWarning
	}
	c.JSON(http.StatusCreated, response)
}

// uploadIDProof reads the multipart file and pushes it to the storage bucket
func uploadIDProof(ctx context.Context, username string, fileHeader *multipart.FileHeader) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := fmt.Sprintf("%s_%s", username, filepath.Base(fileHeader.Filename))
	return storageClient.Upload(ctx, key, contentType, data)
}

// Login handles user authentication
// POST /api/auth/login
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	var user models.User
	if err := database.DB.Where("username = ?", req.Username).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	// Generate JWT
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role,
		"exp":  time.Now().Add(tokenDuration()).Unix(),
	})

	tokenString, err := token.SignedString(jwtSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, AuthResponse{
		Token: tokenString,
		User:  user,
	})
}

// tokenDuration returns standard token lifetime (24h)
func tokenDuration() time.Duration {
	return 24 * time.Hour
}

// Me returns the authenticated user
// GET /api/auth/me
func Me(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// UpdateProfile updates the family head's contact and address details
// PUT /api/profile
func UpdateProfile(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req struct {
		Address  string `json:"address" binding:"required"`
		City     string `json:"city" binding:"required"`
		Barangay string `json:"barangay" binding:"required"`
		Contact  string `json:"contact" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if !validContact(req.Contact) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Contact must be exactly 11 digits"})
		return
	}

	updates := map[string]interface{}{
		"address":  strings.TrimSpace(req.Address),
		"city":     strings.TrimSpace(req.City),
		"barangay": strings.TrimSpace(req.Barangay),
		"contact":  req.Contact,
	}
	if err := database.DB.Model(user).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}
	if err := database.DB.First(user, "id = ?", user.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reload profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// AuthMiddleware validates the bearer token and loads the current user into
// the request context
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			return jwtSecret, nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			c.Abort()
			return
		}
		sub, ok := claims["sub"].(float64)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token subject"})
			c.Abort()
			return
		}

		var user models.User
		if err := database.DB.First(&user, "id = ?", uint(sub)).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User no longer exists"})
			c.Abort()
			return
		}

		c.Set("currentUser", &user)
		c.Next()
	}
}

// RequireAdmin guards admin-only routes. Must run after AuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || !user.IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user resolved by AuthMiddleware, or nil
func CurrentUser(c *gin.Context) *models.User {
	value, exists := c.Get("currentUser")
	if !exists {
		return nil
	}
	user, ok := value.(*models.User)
	if !ok {
		return nil
	}
	return user
}

// SeedAdminUser ensures the default admin account exists
func SeedAdminUser() {
	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}

	var count int64
	database.DB.Model(&models.User{}).Where("username = ?", username).Count(&count)

	if count == 0 {
		hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("❌ Failed to hash password: %v", err)
			return
		}

		admin := models.User{
			Username:     username,
			PasswordHash: string(hashedBytes),
			Role:         models.RoleAdmin,
			FirstName:    "System",
			LastName:     "Administrator",
			Contact:      "00000000000",
		}

		if err := database.DB.Create(&admin).Error; err != nil {
			log.Printf("❌ Failed to create admin user: %v", err)
		} else {
			log.Println("✅ Admin user seeded successfully")
		}
	}
}

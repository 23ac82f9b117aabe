package services

import (
	"errors"
	"time"

	"github.com/Sinduaditya/gizi-gemini/config"
	"github.com/Sinduaditya/gizi-gemini/models"
	"github.com/Sinduaditya/gizi-gemini/utils"

	"gorm.io/gorm"
)

func RegisterUser(username, password, email, fullName string, age int, gender string) error {
	var existing models.User
	err := config.DB.Where("username = ?", username).First(&existing).Error
	if err == nil {
		return errors.New("username already taken")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	user := models.User{
		Username: username,
		Password: hashedPassword,
		Email:    email,
		FullName: fullName,
		Age:      age,
		Gender:   gender,
	}
	return config.DB.Create(&user).Error
}

func AuthenticateUser(username, password string) (string, *models.User, error) {
	var user models.User
	if err := config.DB.Where("username = ?", username).First(&user).Error; err != nil {
		return "", nil, errors.New("invalid username or password")
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		return "", nil, errors.New("invalid username or password")
	}

	token, err := utils.GenerateJWT(user.ID, user.Username)
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}

// StartPasswordReset issues a short-lived reset code and mails it. Callers
// must not reveal whether the username exists.
func StartPasswordReset(username string) error {
	var user models.User
	if err := config.DB.Where("username = ?", username).First(&user).Error; err != nil {
		return err
	}
	if user.Email == "" {
		return errors.New("no email on account")
	}

	token := utils.GenerateRandomToken(6)
	user.ResetToken = token
	user.ResetTokenExp = time.Now().Add(15 * time.Minute)
	if err := config.DB.Save(&user).Error; err != nil {
		return err
	}

	return utils.SendResetEmail(user.Email, token)
}

func ResetPassword(token, newPassword string) error {
	var user models.User
	if err := config.DB.Where("reset_token = ?", token).First(&user).Error; err != nil {
		return errors.New("invalid or expired token")
	}
	if time.Now().After(user.ResetTokenExp) {
		return errors.New("invalid or expired token")
	}

	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}

	user.Password = hashed
	user.ResetToken = ""
	user.ResetTokenExp = time.Time{}
	return config.DB.Save(&user).Error
}

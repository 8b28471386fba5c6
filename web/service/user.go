package service

import (
	"errors"

	"library-ui/database"
	"library-ui/database/model"
	"library-ui/logger"
	"library-ui/util/crypto"
)

type UserService struct{}

func (s *UserService) GetFirstUser() (*model.User, error) {
	db := database.GetDB()

	user := &model.User{}
	err := db.Model(model.User{}).
		First(user).
		Error
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetUserByUsername(username string) (*model.User, error) {
	db := database.GetDB()

	user := &model.User{}
	err := db.Model(model.User{}).
		Where("username = ?", username).
		First(user).
		Error
	if err != nil {
		return nil, err
	}
	return user, nil
}

// CheckUser verifies a username/password pair against the stored bcrypt hash.
// Unknown usernames and wrong passwords are indistinguishable to the caller:
// both return nil.
func (s *UserService) CheckUser(username string, password string) *model.User {
	user, err := s.GetUserByUsername(username)
	if database.IsNotFound(err) {
		return nil
	} else if err != nil {
		logger.Warning("check user err:", err)
		return nil
	}

	if !crypto.CheckPasswordHash(user.Password, password) {
		return nil
	}

	return user
}

func (s *UserService) UpdateUser(id int, username string, password string) error {
	db := database.GetDB()
	hashedPassword, err := crypto.HashPasswordAsBcrypt(password)
	if err != nil {
		return err
	}

	return db.Model(model.User{}).
		Where("id = ?", id).
		Updates(map[string]any{"username": username, "password": hashedPassword}).
		Error
}

// UpdateFirstUser sets the admin account's credentials. Used by the CLI
// setting command and the bootstrap config file.
func (s *UserService) UpdateFirstUser(username string, password string) error {
	if username == "" {
		return errors.New("username can not be empty")
	} else if password == "" {
		return errors.New("password can not be empty")
	}
	hashedPassword, err := crypto.HashPasswordAsBcrypt(password)
	if err != nil {
		return err
	}

	db := database.GetDB()
	user := &model.User{}
	findErr := db.Model(model.User{}).First(user).Error
	if database.IsNotFound(findErr) {
		user.Username = username
		user.Password = hashedPassword
		user.Role = model.RoleAdmin
		return db.Model(model.User{}).Create(user).Error
	} else if findErr != nil {
		return findErr
	}
	user.Username = username
	user.Password = hashedPassword
	return db.Save(user).Error
}

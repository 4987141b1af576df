package storage

import (
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/amasacademy/portal/user-service/internal/domain/models"
	"github.com/amasacademy/portal/user-service/internal/logger"
	storerrros "github.com/amasacademy/portal/user-service/internal/storage/errors"
)

type MemStorage struct {
	mu        sync.RWMutex
	usersStor map[string]models.User
}

func New() *MemStorage {
	return &MemStorage{
		usersStor: make(map[string]models.User),
	}
}

func (ms *MemStorage) SaveUser(user models.User) (string, error) {
	log := logger.Get()
	ms.mu.Lock()
	defer ms.mu.Unlock()
	uid := uuid.New().String()
	if _, err := ms.findUser(user.Email); err == nil {
		return "", storerrros.ErrUserExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(user.Pass), bcrypt.DefaultCost)
	if err != nil {
		log.Error().Err(err).Msg("save user failed")
		return "", err
	}
	user.Pass = string(hash)
	user.UID = uid
	if user.Role == "" {
		user.Role = "user"
	}
	ms.usersStor[uid] = user
	return uid, nil
}

func (ms *MemStorage) ValidUser(user models.User) (models.User, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	memUser, err := ms.findUser(user.Email)
	if err != nil {
		return models.User{}, err
	}
	if err = bcrypt.CompareHashAndPassword([]byte(memUser.Pass), []byte(user.Pass)); err != nil {
		return models.User{}, storerrros.ErrInvalidPassword
	}
	return memUser, nil
}

func (ms *MemStorage) GetUser(uid string) (models.User, error) {
	log := logger.Get()
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	user, ok := ms.usersStor[uid]
	if !ok {
		log.Error().Str("uid", uid).Msg("user not found")
		return models.User{}, storerrros.ErrUserNotFound
	}
	return user, nil
}

// SetPassword stores a new hash and clears the forced-change flag.
func (ms *MemStorage) SetPassword(uid, pass string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	user, ok := ms.usersStor[uid]
	if !ok {
		return storerrros.ErrUserNotFound
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Pass = string(hash)
	user.RequirePasswordChange = false
	ms.usersStor[uid] = user
	return nil
}

func (ms *MemStorage) findUser(login string) (models.User, error) {
	for _, user := range ms.usersStor {
		if user.Email == login {
			return user, nil
		}
	}
	return models.User{}, storerrros.ErrUserNoExist
}

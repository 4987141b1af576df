package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/amasacademy/portal/user-service/internal/domain/consts"
	"github.com/amasacademy/portal/user-service/internal/domain/models"
	"github.com/amasacademy/portal/user-service/internal/logger"
	storerrros "github.com/amasacademy/portal/user-service/internal/storage/errors"
)

type DBStorage struct {
	conn *pgx.Conn
}

func NewDB(ctx context.Context, addr string) (*DBStorage, error) {
	conn, err := pgx.Connect(ctx, addr)
	if err != nil {
		return nil, err
	}
	return &DBStorage{
		conn: conn,
	}, nil
}

func (dbs *DBStorage) SaveUser(user models.User) (string, error) {
	log := logger.Get()
	ctx, cancel := context.WithTimeout(context.Background(), consts.DBCtxTimeout)
	defer cancel()

	var existing string
	row := dbs.conn.QueryRow(ctx, "SELECT email FROM users WHERE email = $1", user.Email)
	if err := row.Scan(&existing); err == nil {
		return "", storerrros.ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(user.Pass), bcrypt.DefaultCost)
	if err != nil {
		log.Error().Err(err).Msg("save user failed")
		return "", err
	}

	user.UID = uuid.New().String()
	user.Pass = string(hash)
	if user.Role == "" {
		user.Role = "user"
	}

	_, err = dbs.conn.Exec(ctx,
		`INSERT INTO users (uid, email, name, lastname, phone, pass, role, require_password_change)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		user.UID, user.Email, user.Name, user.LastName, user.Phone, user.Pass, user.Role, user.RequirePasswordChange)
	if err != nil {
		log.Error().Err(err).Msg("failed to insert user")
		return "", err
	}
	return user.UID, nil
}

func (dbs *DBStorage) ValidUser(user models.User) (models.User, error) {
	log := logger.Get()
	ctx, cancel := context.WithTimeout(context.Background(), consts.DBCtxTimeout)
	defer cancel()
	var usr models.User
	row := dbs.conn.QueryRow(ctx,
		"SELECT uid, email, name, lastname, phone, pass, role, require_password_change FROM users WHERE email = $1",
		user.Email)
	if err := row.Scan(&usr.UID, &usr.Email, &usr.Name, &usr.LastName, &usr.Phone, &usr.Pass, &usr.Role, &usr.RequirePasswordChange); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, storerrros.ErrUserNoExist
		}
		log.Error().Err(err).Msg("failed scan db data")
		return models.User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usr.Pass), []byte(user.Pass)); err != nil {
		return models.User{}, storerrros.ErrInvalidPassword
	}
	return usr, nil
}

func (dbs *DBStorage) GetUser(uid string) (models.User, error) {
	log := logger.Get()
	ctx, cancel := context.WithTimeout(context.Background(), consts.DBCtxTimeout)
	defer cancel()
	row := dbs.conn.QueryRow(ctx,
		"SELECT uid, email, name, lastname, phone, pass, role, require_password_change FROM users WHERE uid = $1",
		uid)
	var usr models.User
	if err := row.Scan(&usr.UID, &usr.Email, &usr.Name, &usr.LastName, &usr.Phone, &usr.Pass, &usr.Role, &usr.RequirePasswordChange); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, storerrros.ErrUserNotFound
		}
		log.Error().Err(err).Msg("failed scan db data")
		return models.User{}, err
	}
	return usr, nil
}

func (dbs *DBStorage) SetPassword(uid, pass string) error {
	log := logger.Get()
	ctx, cancel := context.WithTimeout(context.Background(), consts.DBCtxTimeout)
	defer cancel()
	hash, err := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	tag, err := dbs.conn.Exec(ctx,
		"UPDATE users SET pass = $1, require_password_change = FALSE WHERE uid = $2", string(hash), uid)
	if err != nil {
		log.Error().Err(err).Msg("failed to update password")
		return err
	}
	if tag.RowsAffected() == 0 {
		return storerrros.ErrUserNotFound
	}
	return nil
}

func Migrations(dbDsn string, migrationsPath string) error {
	log := logger.Get()
	migratePath := fmt.Sprintf("file://%s", migrationsPath)
	m, err := migrate.New(migratePath, dbDsn)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info().Msg("no mirations apply")
			return nil
		}
		return err
	}
	log.Info().Msg("all mirations apply")
	return nil
}

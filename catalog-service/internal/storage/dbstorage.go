package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/amasacademy/portal/catalog-service/internal/domain/consts"
	"github.com/amasacademy/portal/catalog-service/internal/domain/models"
	"github.com/amasacademy/portal/catalog-service/internal/logger"
	storerrros "github.com/amasacademy/portal/catalog-service/internal/storage/errors"
)

type DBStorage struct {
	pool *pgxpool.Pool
}

func NewDB(ctx context.Context, addr string) (*DBStorage, error) {
	config, err := pgxpool.ParseConfig(addr)
	if err != nil {
		return nil, err
	}
	config.MaxConns = 20
	config.MinConns = 2
	config.MaxConnLifetime = 30 * time.Minute
	config.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, err
	}
	return &DBStorage{pool: pool}, nil
}

func (dbs *DBStorage) SaveProduct(product models.Product) error {
	log := logger.Get()
	ctx, cancel := context.WithTimeout(context.Background(), consts.DBCtxTimeout)
	defer cancel()

	variants, err := json.Marshal(product.Variants)
	if err != nil {
		return err
	}

	var pid string
	err = dbs.pool.QueryRow(ctx, `SELECT pid FROM products WHERE name=$1 AND category=$2`, product.Name, product.Category).Scan(&pid)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			pid := uuid.New().String()
			_, err := dbs.pool.Exec(ctx,
				`INSERT INTO products (pid, name, "desc", price, category, image, variants, available)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
				pid, product.Name, product.Desc, product.Price, product.Category, product.Image, variants, product.Available)
			if err != nil {
				log.Error().Err(err).Msg("save product failed")
				return err
			}
			return nil
		}
		log.Error().Err(err).Msg("get product failed")
		return err
	}
	log.Debug().Str("pid", pid).Msg("product already exists")
	return nil
}

func (dbs *DBStorage) SaveProducts(products []models.Product) error {
	for _, product := range products {
		if err := dbs.SaveProduct(product); err != nil {
			return err
		}
	}
	return nil
}

func (dbs *DBStorage) GetProducts(search, category, sortBy string, ascending bool) ([]models.Product, error) {
	log := logger.Get()
	ctx, cancel := context.WithTimeout(context.Background(), consts.DBCtxTimeout)
	defer cancel()

	query := `SELECT pid, name, "desc", price, category, image, variants, available FROM products`
	var conds []string
	var args []interface{}
	if search != "" {
		args = append(args, "%"+search+"%")
		conds = append(conds, fmt.Sprintf(`(name ILIKE $%d OR "desc" ILIKE $%d)`, len(args), len(args)))
	}
	if category != "" {
		args = append(args, category)
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	direction := "ASC"
	if !ascending {
		direction = "DESC"
	}
	switch sortBy {
	case "price":
		query += " ORDER BY price " + direction
	case "name":
		query += " ORDER BY name " + direction
	default:
		query += " ORDER BY pid " + direction
	}

	rows, err := dbs.pool.Query(ctx, query, args...)
	if err != nil {
		log.Error().Err(err).Msg("failed get products from db")
		return nil, err
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			log.Error().Err(err).Msg("failed to scan data from db")
			return nil, err
		}
		products = append(products, product)
	}
	if len(products) == 0 {
		return nil, storerrros.ErrEmptyProductList
	}
	return products, nil
}

func (dbs *DBStorage) GetProduct(pid string) (models.Product, error) {
	log := logger.Get()
	ctx, cancel := context.WithTimeout(context.Background(), consts.DBCtxTimeout)
	defer cancel()
	row := dbs.pool.QueryRow(ctx,
		`SELECT pid, name, "desc", price, category, image, variants, available FROM products WHERE pid = $1`, pid)

	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Product{}, storerrros.ErrProductNoExist
		}
		log.Error().Err(err).Msg("failed to scan data from db")
		return models.Product{}, err
	}
	return product, nil
}

func (dbs *DBStorage) DeleteProduct(pid string) error {
	log := logger.Get()
	ctx, cancel := context.WithTimeout(context.Background(), consts.DBCtxTimeout)
	defer cancel()

	res, err := dbs.pool.Exec(ctx, "DELETE FROM products WHERE pid = $1", pid)
	if err != nil {
		log.Error().Err(err).Msg("failed to delete product")
		return err
	}
	if res.RowsAffected() == 0 {
		log.Warn().Str("pid", pid).Msg("product not found")
		return storerrros.ErrProductNoExist
	}
	log.Info().Str("pid", pid).Msg("product deleted successfully")
	return nil
}

func scanProduct(row pgx.Row) (models.Product, error) {
	var product models.Product
	var variants []byte
	if err := row.Scan(&product.PID, &product.Name, &product.Desc, &product.Price,
		&product.Category, &product.Image, &variants, &product.Available); err != nil {
		return models.Product{}, err
	}
	if len(variants) > 0 {
		if err := json.Unmarshal(variants, &product.Variants); err != nil {
			return models.Product{}, err
		}
	}
	return product, nil
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

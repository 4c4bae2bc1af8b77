package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"shopfront/shared/pkg/awsconf"
	"shopfront/shared/pkg/config"
	"shopfront/shared/pkg/models"
)

type Users interface {
	Find(ctx context.Context, email string) (models.User, bool, error)
	Create(ctx context.Context, u models.User) error
}

type Orders interface {
	Append(ctx context.Context, o models.Order) error
}

// Stores is the single backend decision shared by both record types.
type Stores struct {
	Backend string
	Users   Users
	Orders  Orders

	close func()
}

func (s *Stores) Close() {
	if s.close != nil {
		s.close()
	}
}

func Memory() *Stores {
	return &Stores{Backend: config.StoreMemory, Users: NewUsersMemory(), Orders: NewOrdersMemory()}
}

func Dynamo(db DynamoAPI, usersTable, ordersTable string) *Stores {
	return &Stores{
		Backend: config.StoreDynamo,
		Users:   &UsersDynamo{DB: db, Table: usersTable},
		Orders:  &OrdersDynamo{DB: db, Table: ordersTable},
	}
}

func Postgres(db *pgxpool.Pool) *Stores {
	return &Stores{
		Backend: config.StorePostgres,
		Users:   &UsersPG{DB: db},
		Orders:  &OrdersPG{DB: db},
		close:   db.Close,
	}
}

// Auto keeps DynamoDB when the probe succeeds and otherwise degrades to memory.
func Auto(ctx context.Context, db DynamoAPI, cfg config.AWSConfig, log zerolog.Logger) *Stores {
	probeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := PingDynamo(probeCtx, db); err != nil {
		log.Warn().Err(err).Msg("dynamodb unavailable, falling back to in-memory store")
		return Memory()
	}
	return Dynamo(db, cfg.UsersTable, cfg.OrdersTable)
}

func Open(ctx context.Context, cfg config.Config, log zerolog.Logger) (*Stores, error) {
	switch cfg.Store.Backend {
	case config.StoreMemory:
		return Memory(), nil

	case config.StorePostgres:
		ctxDB, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		db, err := pgxpool.New(ctxDB, cfg.Postgres.DSN)
		if err != nil {
			return nil, fmt.Errorf("pg connect: %w", err)
		}
		if err := db.Ping(ctxDB); err != nil {
			db.Close()
			return nil, fmt.Errorf("pg ping: %w", err)
		}
		return Postgres(db), nil

	case config.StoreDynamo, config.StoreAuto:
		awsCfg, err := awsconf.Load(ctx, cfg.AWS.Region, cfg.AWS.Profile)
		if err != nil {
			if cfg.Store.Backend == config.StoreAuto {
				log.Warn().Err(err).Msg("aws config unavailable, falling back to in-memory store")
				return Memory(), nil
			}
			return nil, err
		}
		db := dynamodb.NewFromConfig(awsCfg)
		if cfg.Store.Backend == config.StoreAuto {
			return Auto(ctx, db, cfg.AWS, log), nil
		}
		if err := PingDynamo(ctx, db); err != nil {
			return nil, fmt.Errorf("dynamodb probe: %w", err)
		}
		return Dynamo(db, cfg.AWS.UsersTable, cfg.AWS.OrdersTable), nil
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
}

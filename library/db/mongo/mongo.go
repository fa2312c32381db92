// Package mongo provides the storage handle for the MongoDB-backed content core.
package mongo

import (
	"context"
	"net/url"
	"sync"
	"time"

	"github.com/Laisky/errors/v2"
	"github.com/Laisky/zap"
	mongoLib "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/Laisky/laisky-blog-content/library/log"
)

const (
	defaultTimeout      = 30 * time.Second
	healthCheckInterval = 5 * time.Second
	defaultHeartbeat    = 10 * time.Second
)

// DB is the narrow storage handle passed to every dao.
//
// Construct one value at process start and inject it; Close is idempotent.
type DB interface {
	Close(ctx context.Context) error
	GetCol(colName string) *mongoLib.Collection
	DB(name string) *mongoLib.Database
	CurrentDB() *mongoLib.Database
	Healthy(ctx context.Context) bool
}

// DialInfo defines the MongoDB connection information.
type DialInfo struct {
	Addr,
	DBName,
	User,
	Pwd string
	AuthDB string
}

type db struct {
	cli      *mongoLib.Client
	dialInfo DialInfo

	closeOnce sync.Once
	cancel    context.CancelFunc
	closeErr  error
}

func buildMongoURI(dialInfo DialInfo) string {
	uri := &url.URL{
		Scheme: "mongodb",
		Host:   dialInfo.Addr,
		Path:   "/" + dialInfo.DBName,
	}
	if dialInfo.User != "" || dialInfo.Pwd != "" {
		uri.User = url.UserPassword(dialInfo.User, dialInfo.Pwd)
	}
	if dialInfo.AuthDB != "" {
		query := url.Values{}
		query.Set("authSource", dialInfo.AuthDB)
		uri.RawQuery = query.Encode()
	}
	return uri.String()
}

// NewDB dials MongoDB once and returns a long-lived handle.
// The driver owns pooling and reconnects; the handle only probes health.
func NewDB(ctx context.Context, dialInfo DialInfo) (DB, error) {
	log.Logger.Info("try to connect to mongodb",
		zap.String("addr", dialInfo.Addr),
		zap.String("db", dialInfo.DBName),
	)

	dialCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	clientOpts := options.Client().
		ApplyURI(buildMongoURI(dialInfo)).
		SetConnectTimeout(30 * time.Second).
		SetServerSelectionTimeout(30 * time.Second).
		SetSocketTimeout(30 * time.Second).
		SetHeartbeatInterval(defaultHeartbeat).
		SetRetryReads(true).
		SetRetryWrites(true).
		SetMaxPoolSize(100).
		SetMinPoolSize(0).
		SetMaxConnecting(2).
		SetMaxConnIdleTime(300 * time.Second)

	cli, err := mongoLib.Connect(dialCtx, clientOpts)
	if err != nil {
		return nil, errors.Wrap(err, "connect db")
	}

	// force a first server selection so failures happen at startup, not later
	if err := cli.Ping(dialCtx, readpref.Primary()); err != nil {
		_ = cli.Disconnect(context.Background())
		return nil, errors.Wrap(err, "ping db")
	}

	checkCtx, checkCancel := context.WithCancel(context.Background())
	d := &db{
		cli:      cli,
		dialInfo: dialInfo,
		cancel:   checkCancel,
	}
	go d.runHealthCheck(checkCtx)

	return d, nil
}

// DB returns a database handle for the specified name.
func (d *db) DB(name string) *mongoLib.Database {
	return d.cli.Database(name)
}

// CurrentDB returns the database named in the dial info.
func (d *db) CurrentDB() *mongoLib.Database {
	return d.DB(d.dialInfo.DBName)
}

// GetCol returns a collection handle by name.
func (d *db) GetCol(colName string) *mongoLib.Collection {
	return d.CurrentDB().Collection(colName)
}

// Healthy reports whether the server currently answers a bounded ping.
func (d *db) Healthy(ctx context.Context) bool {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return d.cli.Ping(pingCtx, readpref.Primary()) == nil
}

// runHealthCheck logs when the server is unreachable; the driver recovers on its own.
func (d *db) runHealthCheck(ctx context.Context) {
	ticker := time.NewTicker(healthCheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		if !d.Healthy(ctx) {
			log.Logger.Warn("mongodb ping failed (driver will auto-recover)",
				zap.String("db", d.dialInfo.Addr))
		}
	}
}

// Close disconnects the client. Safe to call more than once.
func (d *db) Close(ctx context.Context) error {
	d.closeOnce.Do(func() {
		d.cancel()

		if ctx == nil {
			ctx = context.Background()
		}
		closeCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
		defer cancel()

		d.closeErr = d.cli.Disconnect(closeCtx)
	})

	return d.closeErr
}

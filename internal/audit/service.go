package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ariefcatur/go-realtime-catalog.git/internal/catalog"
	kafkax "github.com/ariefcatur/go-realtime-catalog.git/internal/kafka"
	"github.com/ariefcatur/go-realtime-catalog.git/internal/redisx"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
)

type Repo struct{ DB *pgxpool.Pool }

// Record menyimpan satu event ke log; event_id unik, replay aman.
func (r *Repo) Record(ctx context.Context, env catalog.Envelope) error {
	_, err := r.DB.Exec(ctx, `
		INSERT INTO catalog_events(event_id, event_type, event_version, occurred_at, producer, correlation_id, payload)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (event_id) DO NOTHING`,
		env.EventID, env.EventType, env.EventVersion, env.OccurredAt,
		env.Producer, env.CorrelationID, []byte(env.Payload))
	return err
}

// Service: consumer event feed catalog, menulis audit trail mutasi.
type Service struct {
	Repo        *Repo
	Redis       *redis.Client
	ServiceName string
}

// HandleCatalogEvent dipasang sebagai handler consumer.
func (s *Service) HandleCatalogEvent(ctx context.Context, m kafkago.Message) error {
	var env catalog.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}
	switch env.EventType {
	case catalog.EventProductCreated, catalog.EventProductUpdated, catalog.EventProductDeleted:
	default:
		return nil // ignore
	}

	// dedup via Redis (pakai event_id)
	dkey := fmt.Sprintf(redisx.KeyDedup, s.ServiceName, env.EventID)
	if exists, _ := redisx.Exists(ctx, s.Redis, dkey); exists {
		return nil
	}

	if err := s.Repo.Record(ctx, env); err != nil {
		return err
	}
	_ = s.Redis.Set(ctx, dkey, "1", redisx.TTLDedup).Err()

	title := ""
	if env.EventType == catalog.EventProductCreated {
		if p, err := kafkax.UnwrapPayload[catalog.ProductCreatedPayload](env.Payload); err == nil {
			title = p.Product.Title
		}
	}
	slog.Info("catalog event recorded",
		"event_id", env.EventID, "event_type", env.EventType,
		"product_id", env.CorrelationID, "title", title)
	return nil
}

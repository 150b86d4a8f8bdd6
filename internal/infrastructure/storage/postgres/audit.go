package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/klauspost/compress/zstd"

	appctx "millstock/internal/core/context"
	"millstock/internal/core/id"
	"millstock/internal/domain"
	"millstock/pkg/logger"
)

// CompressionAlgo specifies the compression algorithm used.
type CompressionAlgo string

const (
	CompressionNone CompressionAlgo = "none"
	CompressionZstd CompressionAlgo = "zstd"
)

// AuditEntry is one persisted row of the mutation trail.
type AuditEntry struct {
	ID                 id.ID              `db:"id"`
	EntityType         string             `db:"entity_type"`
	EntityID           id.ID              `db:"entity_id"`
	Action             domain.AuditAction `db:"action"`
	Actor              string             `db:"actor"`
	Payload            json.RawMessage    `db:"payload"`
	PayloadCompressed  []byte             `db:"payload_compressed"`
	CompressionAlgo    CompressionAlgo    `db:"compression_algo"`
	CreatedAt          time.Time          `db:"created_at"`
}

// AuditService implements domain.AuditRecorder against the sys_audit
// table. Large payloads are zstd-compressed before insert.
type AuditService struct {
	txManager         *TxManager
	encoder           *zstd.Encoder
	decoder           *zstd.Decoder
	compressThreshold int
}

// NewAuditService creates a new audit service.
func NewAuditService(txManager *TxManager) (*AuditService, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}

	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}

	return &AuditService{
		txManager:         txManager,
		encoder:           encoder,
		decoder:           decoder,
		compressThreshold: 10 * 1024,
	}, nil
}

// Record persists an audit event. Failures are logged and swallowed so
// the business operation that produced the event cannot fail on audit.
func (s *AuditService) Record(ctx context.Context, event domain.AuditEvent) {
	if err := s.record(ctx, event); err != nil {
		logger.Error(ctx, "record audit event",
			"error", err,
			"entity_type", event.EntityType,
			"entity_id", event.EntityID,
			"action", string(event.Action),
		)
	}
}

func (s *AuditService) record(ctx context.Context, event domain.AuditEvent) error {
	entry := AuditEntry{
		ID:         id.New(),
		EntityType: event.EntityType,
		EntityID:   event.EntityID,
		Action:     event.Action,
		Actor:      event.Actor,
		CreatedAt:  event.At,
	}
	if entry.Actor == "" {
		entry.Actor = appctx.GetUserEmail(ctx)
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	if event.Payload != nil {
		payload, err := json.Marshal(event.Payload)
		if err != nil {
			return fmt.Errorf("marshal payload: %w", err)
		}
		entry.Payload = payload
	}

	entry.CompressionAlgo = CompressionNone
	if len(entry.Payload) > s.compressThreshold {
		entry.PayloadCompressed = s.encoder.EncodeAll(entry.Payload, nil)
		entry.Payload = nil
		entry.CompressionAlgo = CompressionZstd
	}

	sql := `
		INSERT INTO sys_audit (
			id, entity_type, entity_id, action, actor,
			payload, payload_compressed, compression_algo, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := s.txManager.GetQuerier(ctx).Exec(ctx, sql,
		entry.ID, entry.EntityType, entry.EntityID, string(entry.Action), entry.Actor,
		entry.Payload, entry.PayloadCompressed, string(entry.CompressionAlgo), entry.CreatedAt,
	)
	return err
}

// EntityHistory retrieves the audit trail for an entity, newest first.
func (s *AuditService) EntityHistory(ctx context.Context, entityType string, entityID id.ID, limit int) ([]AuditEntry, error) {
	sql := `
		SELECT id, entity_type, entity_id, action, actor,
			   payload, payload_compressed, compression_algo, created_at
		FROM sys_audit
		WHERE entity_type = $1 AND entity_id = $2
		ORDER BY created_at DESC
		LIMIT $3
	`

	rows, err := s.txManager.GetQuerier(ctx).Query(ctx, sql, entityType, entityID, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []AuditEntry
	for rows.Next() {
		var e AuditEntry
		err := rows.Scan(
			&e.ID, &e.EntityType, &e.EntityID, &e.Action, &e.Actor,
			&e.Payload, &e.PayloadCompressed, &e.CompressionAlgo, &e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}

		if e.CompressionAlgo == CompressionZstd && len(e.PayloadCompressed) > 0 {
			decompressed, err := s.decoder.DecodeAll(e.PayloadCompressed, nil)
			if err != nil {
				return nil, fmt.Errorf("decompress payload: %w", err)
			}
			e.Payload = decompressed
			e.PayloadCompressed = nil
		}

		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// Ensure interface compliance.
var _ domain.AuditRecorder = (*AuditService)(nil)

package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ellavondegurechaff/nrdb-bot/internal/domain/cards"
	"github.com/ellavondegurechaff/nrdb-bot/internal/gateways/database/models"
	"github.com/ellavondegurechaff/nrdb-bot/nrdbot/logger"
	"github.com/uptrace/bun"
)

const (
	defaultTimeout = 30 * time.Second
	maxBatchSize   = 1000
)

// CardRepository keeps a copy of the card catalog in Postgres so the bot
// can start while NetrunnerDB is down.
type CardRepository struct {
	db  *bun.DB
	now func() time.Time
}

var _ cards.CatalogMirror = (*CardRepository)(nil)

func NewCardRepository(db *bun.DB) *CardRepository {
	return &CardRepository{db: db, now: time.Now}
}

// ReplaceAll swaps the stored catalog for records in one transaction. An
// empty catalog is rejected so a bad download cannot wipe the mirror.
func (r *CardRepository) ReplaceAll(ctx context.Context, records []*cards.CardRecord) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows := toRows(records, r.now())
	if len(rows) == 0 {
		return 0, fmt.Errorf("refusing to replace mirror with an empty catalog")
	}

	ql := logger.NewQueryLogger("replace_cards", "nrdb_cards", len(rows))
	total := 0
	err := r.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().Model((*models.Card)(nil)).Where("TRUE").Exec(ctx); err != nil {
			return fmt.Errorf("clear cards: %w", err)
		}

		for i := 0; i < len(rows); i += maxBatchSize {
			end := min(i+maxBatchSize, len(rows))
			batch := rows[i:end]

			res, err := tx.NewInsert().
				Model(&batch).
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("insert cards %d-%d: %w", i, end, err)
			}
			affected, err := res.RowsAffected()
			if err != nil {
				return err
			}
			total += int(affected)
		}
		return nil
	})
	ql.Log(err, int64(total))
	if err != nil {
		return 0, err
	}
	return total, nil
}

// toRows converts records to rows, keeping the first record of each code
// and dropping records without one.
func toRows(records []*cards.CardRecord, now time.Time) []*models.Card {
	seen := make(map[string]struct{}, len(records))
	rows := make([]*models.Card, 0, len(records))
	for _, rec := range records {
		if rec == nil || rec.Code == "" {
			continue
		}
		if _, dup := seen[rec.Code]; dup {
			continue
		}
		seen[rec.Code] = struct{}{}
		rows = append(rows, models.FromRecord(rec, now))
	}
	return rows
}

func (r *CardRepository) GetAll(ctx context.Context) ([]*models.Card, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rows []*models.Card
	err := r.db.NewSelect().
		Model(&rows).
		Order("code ASC").
		Scan(ctx)
	return rows, err
}

func (r *CardRepository) Count(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.db.NewSelect().Model((*models.Card)(nil)).Count(ctx)
}

func (r *CardRepository) SaveCatalog(ctx context.Context, records []*cards.CardRecord) error {
	_, err := r.ReplaceAll(ctx, records)
	return err
}

func (r *CardRepository) LoadCatalog(ctx context.Context) ([]*cards.CardRecord, error) {
	rows, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	records := make([]*cards.CardRecord, len(rows))
	for i, row := range rows {
		records[i] = row.ToRecord()
	}
	return records, nil
}

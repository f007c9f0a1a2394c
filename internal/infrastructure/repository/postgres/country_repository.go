package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/football-data/internal/domain/country"
	qb "github.com/riskibarqy/football-data/internal/platform/querybuilder"
)

type CountryRepository struct {
	q Querier
}

func NewCountryRepository(q Querier) *CountryRepository {
	return &CountryRepository{q: q}
}

func (r *CountryRepository) Upsert(ctx context.Context, c country.Country) error {
	model := countryTableModel{
		Name:        c.Name,
		Code:        c.Code,
		Flag:        c.Flag,
		LastUpdated: c.LastUpdated,
	}
	if model.LastUpdated.IsZero() {
		model.LastUpdated = time.Now().UTC()
	}

	query, args, err := qb.InsertModel("countries", model, `ON CONFLICT (name)
		DO UPDATE SET code = EXCLUDED.code, flag = EXCLUDED.flag, last_updated = EXCLUDED.last_updated`)
	if err != nil {
		return fmt.Errorf("build upsert country query: %w", err)
	}

	return withSavepoint(ctx, r.q, func() error {
		if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert country: %w", err)
		}
		return nil
	})
}

func (r *CountryRepository) GetByName(ctx context.Context, name string) (country.Country, bool, error) {
	query, args, err := qb.Select("*").From("countries").
		Where(qb.Eq("name", name)).
		ToSQL()
	if err != nil {
		return country.Country{}, false, fmt.Errorf("build get country query: %w", err)
	}

	var row countryTableModel
	if err := r.q.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return country.Country{}, false, nil
		}
		return country.Country{}, false, fmt.Errorf("get country by name: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *CountryRepository) DeleteUpdatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return deleteUpdatedBefore(ctx, r.q, "countries", cutoff)
}

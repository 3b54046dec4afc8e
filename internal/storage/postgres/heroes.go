package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Gzeu/cosmic-legends-server/internal/roster"
	"github.com/Gzeu/cosmic-legends-server/internal/storage"
)

// HeroRepository provides hero persistence operations.
type HeroRepository struct {
	db *pgxpool.Pool
}

// NewHeroRepository creates a HeroRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewHeroRepository(db *pgxpool.Pool) *HeroRepository {
	return &HeroRepository{db: db}
}

const heroColumns = `id, name, title, class, element, rarity, level, experience,
	       health, mana, attack, defense, speed, cosmic_power,
	       powers, owner, nft_id, created_at, updated_at`

// Save upserts a hero by ID.
//
// Precondition: h.ID must be non-empty.
// Postcondition: The stored row matches h exactly, including timestamps.
func (r *HeroRepository) Save(ctx context.Context, h *roster.Hero) error {
	powers, err := json.Marshal(h.Powers)
	if err != nil {
		return fmt.Errorf("marshaling hero powers: %w", err)
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO heroes
			(id, name, title, class, element, rarity, level, experience,
			 health, mana, attack, defense, speed, cosmic_power,
			 powers, owner, nft_id, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name, title = EXCLUDED.title,
			class = EXCLUDED.class, element = EXCLUDED.element,
			rarity = EXCLUDED.rarity, level = EXCLUDED.level,
			experience = EXCLUDED.experience,
			health = EXCLUDED.health, mana = EXCLUDED.mana,
			attack = EXCLUDED.attack, defense = EXCLUDED.defense,
			speed = EXCLUDED.speed, cosmic_power = EXCLUDED.cosmic_power,
			powers = EXCLUDED.powers, owner = EXCLUDED.owner,
			nft_id = EXCLUDED.nft_id, updated_at = EXCLUDED.updated_at`,
		h.ID, h.Name, h.Title, h.Class, h.Element, h.Rarity, h.Level, h.Experience,
		h.Stats.Health, h.Stats.Mana, h.Stats.Attack, h.Stats.Defense,
		h.Stats.Speed, h.Stats.CosmicPower,
		powers, h.Owner, h.NFTID, h.CreatedAt, h.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upserting hero: %w", err)
	}
	return nil
}

// Get retrieves a hero by its ID.
//
// Postcondition: Returns the Hero or storage.ErrNotFound.
func (r *HeroRepository) Get(ctx context.Context, id string) (*roster.Hero, error) {
	row := r.db.QueryRow(ctx, `SELECT `+heroColumns+` FROM heroes WHERE id = $1`, id)
	h, err := scanHero(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("querying hero: %w", err)
	}
	return h, nil
}

// List returns heroes matching the filter ordered by created_at, plus
// the total match count before pagination.
//
// Postcondition: Returns a slice (may be empty) or a non-nil error.
func (r *HeroRepository) List(ctx context.Context, f roster.Filter) ([]*roster.Hero, int, error) {
	where, args := heroPredicates(f)

	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM heroes`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting heroes: %w", err)
	}

	query := `SELECT ` + heroColumns + ` FROM heroes` + where + ` ORDER BY created_at ASC, id ASC`
	if f.Limit >= 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if f.Offset > 0 {
		args = append(args, f.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("listing heroes: %w", err)
	}
	defer rows.Close()

	heroes := make([]*roster.Hero, 0)
	for rows.Next() {
		h, err := scanHero(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning hero row: %w", err)
		}
		heroes = append(heroes, h)
	}
	return heroes, total, rows.Err()
}

// Delete removes a hero by ID.
//
// Postcondition: Returns nil on success, storage.ErrNotFound if no row deleted.
func (r *HeroRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM heroes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting hero: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func heroPredicates(f roster.Filter) (string, []any) {
	clauses := make([]string, 0, 3)
	args := make([]any, 0, 3)
	if f.Owner != "" {
		args = append(args, f.Owner)
		clauses = append(clauses, fmt.Sprintf("owner = $%d", len(args)))
	}
	if f.Class != "" {
		args = append(args, f.Class)
		clauses = append(clauses, fmt.Sprintf("lower(class) = lower($%d)", len(args)))
	}
	if f.Rarity != "" {
		args = append(args, f.Rarity)
		clauses = append(clauses, fmt.Sprintf("lower(rarity) = lower($%d)", len(args)))
	}
	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func scanHero(row pgx.Row) (*roster.Hero, error) {
	var h roster.Hero
	var powers []byte
	if err := row.Scan(
		&h.ID, &h.Name, &h.Title, &h.Class, &h.Element, &h.Rarity,
		&h.Level, &h.Experience,
		&h.Stats.Health, &h.Stats.Mana, &h.Stats.Attack, &h.Stats.Defense,
		&h.Stats.Speed, &h.Stats.CosmicPower,
		&powers, &h.Owner, &h.NFTID, &h.CreatedAt, &h.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if len(powers) > 0 {
		if err := json.Unmarshal(powers, &h.Powers); err != nil {
			return nil, fmt.Errorf("unmarshaling hero powers: %w", err)
		}
	}
	return &h, nil
}

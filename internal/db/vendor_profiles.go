package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// UpsertVendorProfile stores the reconciled profile for a website URL,
// replacing any previous profile for the same URL.
func (db *DB) UpsertVendorProfile(ctx context.Context, websiteURL string, profile map[string]any) (uuid.UUID, error) {
	jsonBytes, err := json.Marshal(profile)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal profile: %w", err)
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO vendor_profiles (website_url, profile)
		 VALUES ($1, $2)
		 ON CONFLICT (website_url) DO UPDATE SET profile = $2, updated_at = NOW()
		 RETURNING id`,
		websiteURL, jsonBytes,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to upsert vendor profile: %w", err)
	}
	return id, nil
}

// GetVendorProfile retrieves the stored profile for a website URL
func (db *DB) GetVendorProfile(ctx context.Context, websiteURL string) (*VendorProfile, error) {
	var vp VendorProfile
	var profileBytes []byte

	err := db.pool.QueryRow(ctx,
		`SELECT id, website_url, profile, created_at, updated_at
		 FROM vendor_profiles WHERE website_url = $1`,
		websiteURL,
	).Scan(&vp.ID, &vp.WebsiteURL, &profileBytes, &vp.CreatedAt, &vp.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get vendor profile: %w", err)
	}

	if len(profileBytes) > 0 {
		var profile any
		if err := json.Unmarshal(profileBytes, &profile); err == nil {
			vp.Profile = profile
		}
	}

	return &vp, nil
}

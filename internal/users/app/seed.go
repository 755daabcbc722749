package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/aussiebroadwan/usersapi/internal/users/domain"
	"github.com/aussiebroadwan/usersapi/internal/users/store"
	"github.com/aussiebroadwan/usersapi/pkg/cryptox"
	"github.com/aussiebroadwan/usersapi/pkg/idx"
)

// Seed inserts count fake users in one transaction and returns how many were
// created. Unless force is set it does nothing when live users already exist.
//
// Every seeded user shares one random password, so nobody can log in as them.
func Seed(ctx context.Context, st store.Store, count int, force bool) (int, error) {
	if count <= 0 {
		return 0, nil
	}

	if !force {
		existing, err := st.Users().Count(ctx)
		if err != nil {
			return 0, fmt.Errorf("count users: %w", err)
		}
		if existing > 0 {
			return 0, nil
		}
	}

	password, err := cryptox.GeneratePassword()
	if err != nil {
		return 0, err
	}
	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return 0, err
	}

	faker := gofakeit.New(0)
	created := 0

	err = st.WithTx(ctx, func(tx store.Tx) error {
		for range count {
			id := idx.New().String()
			user := domain.User{
				ID: id,
				// The id suffix keeps generated emails unique.
				Email:        strings.ToLower(fmt.Sprintf("%s.%s@%s", faker.Username(), id[len(id)-6:], faker.DomainName())),
				Name:         faker.Name(),
				PasswordHash: hash,
			}
			if _, err := tx.Users().Create(ctx, user); err != nil {
				return fmt.Errorf("create seed user: %w", err)
			}
			created++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return created, nil
}

// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"husq/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumHusqs    int
	ShouldClean bool
}

// DefaultPassword is the password assigned to every seeded user so local
// logins are predictable.
const DefaultPassword = "hunter2"

// Seed populates the database with a follow mesh, husqs, replies and likes.
func Seed(db *gorm.DB, opts Options) error {
	gofakeit.Seed(time.Now().UnixNano())
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	log.Printf("Seeding %d users and %d husqs...", opts.NumUsers, opts.NumHusqs)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			return fmt.Errorf("failed to clear existing data: %w", err)
		}
	}

	users, err := createUsers(db, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("created %d users", len(users))

	if err := createFollowMesh(db, users, r); err != nil {
		return fmt.Errorf("failed to create follow mesh: %w", err)
	}

	husqs, err := createHusqs(db, users, opts.NumHusqs, r)
	if err != nil {
		return fmt.Errorf("failed to create husqs: %w", err)
	}
	log.Printf("created %d husqs", len(husqs))

	if err := createLikes(db, users, husqs, r); err != nil {
		return fmt.Errorf("failed to create likes: %w", err)
	}

	log.Println("Seeding complete")
	return nil
}

func clearData(db *gorm.DB) error {
	// Child tables first so foreign keys never dangle mid-wipe.
	for _, table := range []string{"likes", "follows", "husqs", "credentials", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}

func createUsers(db *gorm.DB, count int) ([]*models.User, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]*models.User, 0, count)
	for i := 0; i < count; i++ {
		name := gofakeit.Name()
		username := fmt.Sprintf("%s%d", strings.ToLower(gofakeit.Username()), i)
		if len(username) > 20 {
			username = username[:20]
		}

		user := &models.User{
			Username: username,
			Name:     name,
			About:    gofakeit.Sentence(8),
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(user).Error; err != nil {
				return err
			}
			return tx.Create(&models.Credential{UserID: user.ID, Password: string(digest)}).Error
		})
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// createFollowMesh has every user follow a random subset of the others so
// timelines are non-empty out of the box.
func createFollowMesh(db *gorm.DB, users []*models.User, r *rand.Rand) error {
	if len(users) < 2 {
		return nil
	}
	for _, follower := range users {
		count := 1 + r.Intn(len(users)/2+1)
		for i := 0; i < count; i++ {
			target := users[r.Intn(len(users))]
			if target.ID == follower.ID {
				continue
			}
			err := db.Clauses(clause.OnConflict{DoNothing: true}).
				Create(&models.Follow{UserID: target.ID, FollowerID: follower.ID}).Error
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func createHusqs(db *gorm.DB, users []*models.User, count int, r *rand.Rand) ([]*models.Husq, error) {
	husqs := make([]*models.Husq, 0, count)
	for i := 0; i < count; i++ {
		author := users[r.Intn(len(users))]
		husq := &models.Husq{
			Text:      husqText(),
			AuthorID:  author.ID,
			CreatedAt: time.Now().Add(-time.Duration(r.Intn(90*24)) * time.Hour),
		}

		// Roughly a quarter of husqs are replies to earlier ones.
		if len(husqs) > 0 && r.Intn(4) == 0 {
			parent := husqs[r.Intn(len(husqs))]
			husq.ReplyID = &parent.ID
		}

		if err := db.Create(husq).Error; err != nil {
			return nil, err
		}
		husqs = append(husqs, husq)
	}
	return husqs, nil
}

func createLikes(db *gorm.DB, users []*models.User, husqs []*models.Husq, r *rand.Rand) error {
	for _, husq := range husqs {
		count := r.Intn(len(users)/2 + 1)
		for i := 0; i < count; i++ {
			user := users[r.Intn(len(users))]
			if user.ID == husq.AuthorID {
				continue
			}
			err := db.Clauses(clause.OnConflict{DoNothing: true}).
				Create(&models.Like{UserID: user.ID, HusqID: husq.ID}).Error
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// husqText generates a sentence trimmed to the 140 character limit.
func husqText() string {
	text := gofakeit.Sentence(3 + rand.Intn(12))
	if len(text) > 140 {
		text = text[:140]
	}
	return text
}

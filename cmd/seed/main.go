// Demo-data seeder: users with a known password, a handful of groups, posts
// spread across groups and authors, comments and a random follow graph.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/gofrs/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm/clause"

	"quill/internal/adapters/database"
	"quill/internal/config"
	commentEntity "quill/internal/core/comment"
	followEntity "quill/internal/core/follow"
	groupEntity "quill/internal/core/group"
	postEntity "quill/internal/core/post"
	userEntity "quill/internal/core/user"
)

const seedPassword = "password123"

func main() {
	users := flag.Int("users", 20, "number of users to create")
	groups := flag.Int("groups", 5, "number of groups to create")
	posts := flag.Int("posts", 200, "number of posts to create")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	db, err := config.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	ctx := context.Background()
	followRepo := database.NewFollowRepositoryDatabase(db)

	hashed, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hashing seed password: %v", err)
	}

	userIDs := make([]uuid.UUID, 0, *users)
	for i := 0; i < *users; i++ {
		u := &userEntity.User{
			ID:        uuid.Must(uuid.NewV4()),
			Username:  fmt.Sprintf("%s%d", gofakeit.Username(), i),
			Email:     fmt.Sprintf("%d.%s", i, gofakeit.Email()),
			Password:  string(hashed),
			FirstName: gofakeit.FirstName(),
			LastName:  gofakeit.LastName(),
		}
		if err := db.Create(u).Error; err != nil {
			log.Fatalf("creating user: %v", err)
		}
		userIDs = append(userIDs, u.ID)
	}
	log.Printf("created %d users (password %q)", len(userIDs), seedPassword)

	groupIDs := make([]uuid.UUID, 0, *groups)
	for i := 0; i < *groups; i++ {
		word := gofakeit.BuzzWord()
		g := &groupEntity.Group{
			ID:          uuid.Must(uuid.NewV4()),
			Slug:        fmt.Sprintf("group-%d", i+1),
			Title:       word,
			Description: gofakeit.Sentence(12),
		}
		if err := db.Create(g).Error; err != nil {
			log.Fatalf("creating group: %v", err)
		}
		groupIDs = append(groupIDs, g.ID)
	}
	log.Printf("created %d groups", len(groupIDs))

	postIDs := make([]uuid.UUID, 0, *posts)
	for i := 0; i < *posts; i++ {
		p := &postEntity.Post{
			ID:        uuid.Must(uuid.NewV4()),
			Text:      gofakeit.Paragraph(1, 3, 12, " "),
			AuthorID:  userIDs[rand.Intn(len(userIDs))],
			CreatedAt: time.Now().Add(-time.Duration(rand.Intn(30*24)) * time.Hour),
		}
		if rand.Intn(3) > 0 {
			gid := groupIDs[rand.Intn(len(groupIDs))]
			p.GroupID = &gid
		}
		if err := db.Omit(clause.Associations).Create(p).Error; err != nil {
			log.Fatalf("creating post: %v", err)
		}
		postIDs = append(postIDs, p.ID)
	}
	log.Printf("created %d posts", len(postIDs))

	comments := 0
	for _, pid := range postIDs {
		for i := rand.Intn(4); i > 0; i-- {
			c := &commentEntity.Comment{
				ID:       uuid.Must(uuid.NewV4()),
				Text:     gofakeit.Sentence(8),
				AuthorID: userIDs[rand.Intn(len(userIDs))],
				PostID:   pid,
			}
			if err := db.Omit(clause.Associations).Create(c).Error; err != nil {
				log.Fatalf("creating comment: %v", err)
			}
			comments++
		}
	}
	log.Printf("created %d comments", comments)

	edges := 0
	for _, followerID := range userIDs {
		for _, authorID := range userIDs {
			if followerID == authorID || rand.Intn(4) > 0 {
				continue
			}
			f := &followEntity.Follow{
				ID:         uuid.Must(uuid.NewV4()),
				FollowerID: followerID,
				AuthorID:   authorID,
			}
			if err := followRepo.Create(ctx, f); err != nil {
				log.Fatalf("creating follow edge: %v", err)
			}
			edges++
		}
	}
	log.Printf("created %d follow edges", edges)
}

// seed inserts a test owner, a registered domain and a few posts into the
// local dev database, then prints requests to try against the gateway.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/ErlanBelekov/domain-gateway/internal/domain"
	"github.com/ErlanBelekov/domain-gateway/internal/email"
	"github.com/ErlanBelekov/domain-gateway/internal/infrastructure/postgres"
	ctxlog "github.com/ErlanBelekov/domain-gateway/internal/log"
	"github.com/ErlanBelekov/domain-gateway/internal/usecase"
)

const (
	seedEmail = "seed@test.local"
	seedNick  = "seed"
	seedHost  = "localhost:4000"
)

type postSpec struct {
	content  string
	hashtags []string
}

var posts = []postSpec{
	{"first post from the seed account #hello", []string{"hello"}},
	{"fixed windows reset on the minute #ratelimit #go", []string{"ratelimit", "go"}},
	{"tokens expire after thirty minutes #jwt", []string{"jwt"}},
	{"no hashtags on this one", nil},
	{"another one for the go tag #go", []string{"go"}},
}

func main() {
	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set. Run: direnv allow")
	}

	logger := ctxlog.New(os.Stderr, "local", slog.LevelInfo)

	if err := postgres.Migrate(dbURL, logger); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	pool, err := postgres.NewPool(ctx, dbURL, postgres.PoolOptions{MaxConns: 2})
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	owner, err := userRepo.Create(ctx, seedEmail, seedNick)
	if err != nil {
		log.Fatalf("create user: %v", err)
	}
	fmt.Printf("user: %s (%s)\n", owner.ID, owner.Email)

	domains := usecase.NewDomainUsecase(
		postgres.NewDomainRepository(pool),
		userRepo,
		email.NewSender("local", "", "", logger),
		logger,
	)
	d, err := domains.Register(ctx, owner.ID, seedHost, domain.TierFree)
	if err != nil {
		log.Fatalf("register domain: %v", err)
	}
	fmt.Printf("domain: %s secret: %s\n", d.Host, d.ClientSecret)

	postRepo := postgres.NewPostRepository(pool)
	for _, p := range posts {
		if _, err := postRepo.Create(ctx, &domain.Post{UserID: owner.ID, Content: p.content}, p.hashtags); err != nil {
			log.Fatalf("create post: %v", err)
		}
	}
	fmt.Printf("posts: %d\n\n", len(posts))

	fmt.Println("try:")
	fmt.Printf("  curl -s -X POST localhost:8080/v2/token -H 'Content-Type: application/json' -d '{\"clientSecret\":\"%s\"}'\n", d.ClientSecret)
	fmt.Println("  curl -s localhost:8080/v2/test -H \"Authorization: $TOKEN\"")
	fmt.Println("  curl -s localhost:8080/v2/posts/my -H \"Authorization: $TOKEN\"")
	fmt.Println("  curl -s localhost:8080/v2/posts/hashtag/go -H \"Authorization: $TOKEN\"")
	fmt.Println("  curl -s -i localhost:8080/v1/token")
}

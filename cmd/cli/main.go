package main

import (
	"context"
	"fmt"
	"os"

	"github.com/marcelsud/bookshelf-api/book"
	"github.com/marcelsud/bookshelf-api/book/memory"
	"github.com/marcelsud/bookshelf-api/book/redis"
	"github.com/marcelsud/bookshelf-api/config"
)

/* cli - one-shot access to the configured book store
 * Usage:
 *   cli list
 *   cli add "<title>" "<author>"
 * With STORE=memory every run starts from the seed books.
 */

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, `usage: cli list | cli add "<title>" "<author>"`)
		os.Exit(2)
	}
	cfg, err := config.GetConfig()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	ctx := context.Background()
	repo, err := openRepository(cfg)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer repo.Close(ctx)
	s := book.NewService(repo)

	switch os.Args[1] {
	case "list":
		all, err := s.List(ctx)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		for _, b := range all {
			fmt.Printf("%d\t%s\t%s\n", b.ID, b.Title, b.Author)
		}
	case "add":
		if len(os.Args) != 4 {
			fmt.Fprintln(os.Stderr, `usage: cli add "<title>" "<author>"`)
			os.Exit(2)
		}
		b, err := s.Create(ctx, book.Draft{Title: &os.Args[2], Author: &os.Args[3]})
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		fmt.Println(b)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
		os.Exit(2)
	}
}

func openRepository(cfg *config.Config) (book.Repository, error) {
	strategy := book.NewIDStrategy(cfg.IDStrategy)
	if cfg.Store == config.StoreRedis {
		return redis.NewRepository(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB,
			redis.WithPrefix(cfg.RedisPrefix),
			redis.WithIDStrategy(strategy),
		)
	}
	seeds := book.DefaultSeeds()
	if cfg.SeedFile != "" {
		loaded, err := book.LoadSeeds(cfg.SeedFile)
		if err != nil {
			return nil, err
		}
		seeds = loaded
	}
	return memory.NewRepository(strategy, seeds...), nil
}

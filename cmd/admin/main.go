// admin runs operator tasks against the gateway database.
package main

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v3"
)

func main() {
	cmd := &cli.Command{
		Name:  "admin",
		Usage: "Domain gateway operator tasks",
		Commands: []*cli.Command{
			{
				Name:  "migrate",
				Usage: "Apply pending database migrations",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runMigrate(ctx)
				},
			},
			{
				Name:  "user",
				Usage: "Manage domain owners",
				Commands: []*cli.Command{
					{
						Name:  "create",
						Usage: "Create an owner, or print the existing one for this email",
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Required: true, Usage: "Owner email"},
							&cli.StringFlag{Name: "nick", Aliases: []string{"n"}, Required: true, Usage: "Display name carried in tokens"},
						},
						Action: func(ctx context.Context, cmd *cli.Command) error {
							return runCreateUser(ctx, os.Stdout, cmd.String("email"), cmd.String("nick"))
						},
					},
				},
			},
			{
				Name:  "domain",
				Usage: "Manage registered domains",
				Commands: []*cli.Command{
					{
						Name:  "register",
						Usage: "Register a host and print its client secret",
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "owner", Aliases: []string{"o"}, Required: true, Usage: "Owner user id"},
							&cli.StringFlag{Name: "host", Required: true, Usage: "Host the caller serves from, e.g. shop.example.com"},
							&cli.StringFlag{Name: "tier", Aliases: []string{"t"}, Value: "free", Usage: "free or premium"},
						},
						Action: func(ctx context.Context, cmd *cli.Command) error {
							return runRegisterDomain(ctx, os.Stdout, cmd.String("owner"), cmd.String("host"), cmd.String("tier"))
						},
					},
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

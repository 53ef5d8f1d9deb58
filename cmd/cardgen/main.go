package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/youruser/birthdaycard/internal/cards"
	"github.com/youruser/birthdaycard/internal/genai"
	imagepkg "github.com/youruser/birthdaycard/internal/image"
	"github.com/youruser/birthdaycard/internal/logging"
	"github.com/youruser/birthdaycard/internal/service"
	"github.com/youruser/birthdaycard/internal/util"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli.Command{
		Name:            "cardgen",
		Usage:           "renders birthday cards from local files",
		HideHelpCommand: true,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "log-level", Value: "warn", Usage: "log `LEVEL`"},
		},
		Commands: []*cli.Command{
			{
				Name:      "render",
				Usage:     "Renders one card and writes card-<name>.png",
				ArgsUsage: "[DESTINATION]",
				Action:    render,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Required: true, Usage: "name of the person celebrating"},
					&cli.StringFlag{Name: "age", Required: true, Usage: "age being celebrated"},
					&cli.StringFlag{Name: "date", Required: true, Usage: "birthday date"},
					&cli.StringFlag{Name: "profession", Usage: "optional profession, used by the greeting"},
					&cli.StringFlag{Name: "photo", Usage: "path to a PNG or JPEG `FILE` with the photo"},
					&cli.StringFlag{Name: "logo", Usage: "path to a PNG or JPEG `FILE` with the logo"},
					&cli.StringFlag{Name: "title", Usage: "headline printed under the photo"},
					&cli.StringFlag{Name: "gemini-key", Sources: cli.EnvVars("CARDGEN_GENAI_API_KEY"),
						Usage: "use Gemini with this API `KEY` instead of the local generator"},
				},
			},
		},
	}

	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "cardgen: %v\n", err)
		os.Exit(1)
	}
}

func render(ctx context.Context, cmd *cli.Command) error {
	log := logging.New(os.Stderr, cmd.String("log-level"), false)

	req := cards.Request{
		Name:       cmd.String("name"),
		Age:        cmd.String("age"),
		Date:       cmd.String("date"),
		Profession: cmd.String("profession"),
	}
	var err error
	if req.Photo, err = readOptional(cmd.String("photo")); err != nil {
		return err
	}
	if req.Logo, err = readOptional(cmd.String("logo")); err != nil {
		return err
	}

	var gen genai.Generator = genai.NewLocal()
	if key := cmd.String("gemini-key"); key != "" {
		if gen, err = genai.NewGemini(ctx, genai.GeminiConfig{APIKey: key}); err != nil {
			return err
		}
	}
	renderer, err := imagepkg.NewRenderer(cmd.String("title"))
	if err != nil {
		return err
	}

	svc := service.NewCardService(gen, renderer, cards.NewMemoryStore(), log)
	card, err := svc.Create(ctx, req)
	if err != nil {
		return err
	}

	dest := cmd.Args().First()
	if dest == "" {
		dest = "."
	}
	path, err := util.WriteFileIn(dest, card.FileName, card.PNG)
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

func readOptional(path string) ([]byte, error) {
	if path == "" {
		return nil, nil
	}
	return os.ReadFile(path)
}

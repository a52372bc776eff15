package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/koios/fluxpoint/pkg/fluxpoint"
	"github.com/koios/fluxpoint/pkg/models"
)

type command func(ctx context.Context, client *fluxpoint.Client, args []string) error

var commands = map[string]command{
	"welcome": runWelcome,
	"custom":  runCustom,
	"player":  runPlayer,
	"skin":    runSkin,
	"ping":    runPing,
}

func runWelcome(ctx context.Context, client *fluxpoint.Client, args []string) error {
	fs := flag.NewFlagSet("welcome", flag.ContinueOnError)
	file := fs.String("f", "", "welcome manifest (YAML)")
	dir := fs.String("dir", "", "directory of welcome manifests")
	id := fs.String("id", "", "manifest ID to render from -dir")
	out := fs.String("o", "welcome.png", "output file")
	fit := fs.String("fit", "", "fit the result into WxH before saving")
	if err := fs.Parse(args); err != nil {
		return err
	}

	manifest, err := selectManifest(*file, *dir, *id)
	if err != nil {
		return err
	}
	image, err := manifest.Build()
	if err != nil {
		return err
	}

	resp, err := client.GetWelcomeImage(ctx, image)
	if err != nil {
		return err
	}
	return saveImage(resp, *out, *fit)
}

func selectManifest(file, dir, id string) (*models.WelcomeManifest, error) {
	if file != "" {
		return models.LoadWelcomeManifest(file)
	}
	if dir == "" {
		return nil, errors.New("one of -f or -dir is required")
	}

	registry := models.NewManifestRegistry()
	skipped, err := registry.LoadDir(dir)
	if err != nil {
		return nil, err
	}
	for _, e := range skipped {
		fmt.Fprintf(os.Stderr, "skipping %v\n", e)
	}
	if id == "" {
		return nil, fmt.Errorf("-id is required with -dir; available: %s", strings.Join(registry.IDs(), ", "))
	}
	manifest, ok := registry.Get(id)
	if !ok {
		return nil, fmt.Errorf("manifest %q not found; available: %s", id, strings.Join(registry.IDs(), ", "))
	}
	return manifest, nil
}

func runCustom(ctx context.Context, client *fluxpoint.Client, args []string) error {
	fs := flag.NewFlagSet("custom", flag.ContinueOnError)
	text := fs.String("text", "Hello", "caption")
	width := fs.Int("width", 800, "canvas width")
	height := fs.Int("height", 400, "canvas height")
	avatar := fs.String("avatar", "", "optional image URL drawn in the corner")
	out := fs.String("o", "custom.png", "output file")
	fit := fs.String("fit", "", "fit the result into WxH before saving")
	if err := fs.Parse(args); err != nil {
		return err
	}

	builder := models.CreateBase(
		models.NewRectangle().WithWidth(*width).WithHeight(*height).WithColor(models.MustRGB(32, 34, 37)),
	).AddImage(
		models.NewCircle().WithColor(models.MustRGB(255, 255, 0)).WithRadius(*height / 4).WithX(*height / 8).WithY(*height / 8),
	)
	if *avatar != "" {
		builder.AddImage(models.NewURLImage(*avatar).WithWidth(*height / 2).WithHeight(*height / 2).
			WithX(*width - *height/2 - 10).WithY(10).WithRound(*height / 4))
	}
	image, err := builder.
		AddText(models.NewSingleLine(*text).
			WithColor(models.MustRGB(255, 255, 255)).
			WithSize(*height / 8).
			AsBold(true).
			WithTextAlignment(models.AlignMiddle).
			WithX(*width / 2).
			WithY(*height - *height/4)).
		Build()
	if err != nil {
		return err
	}

	resp, err := client.GetCustomImage(ctx, image)
	if err != nil {
		return err
	}
	return saveImage(resp, *out, *fit)
}

func runPlayer(ctx context.Context, client *fluxpoint.Client, args []string) error {
	fs := flag.NewFlagSet("player", flag.ContinueOnError)
	name := fs.String("name", "", "player name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return printMc(ctx, client, models.NewPlayer(*name))
}

func runSkin(ctx context.Context, client *fluxpoint.Client, args []string) error {
	fs := flag.NewFlagSet("skin", flag.ContinueOnError)
	name := fs.String("name", "", "player name")
	skinType := fs.String("type", string(models.SkinFull), "body, cube, head, full or all")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return printMc(ctx, client, models.NewPlayerSkin(*name).WithType(models.SkinType(*skinType)))
}

func runPing(ctx context.Context, client *fluxpoint.Client, args []string) error {
	fs := flag.NewFlagSet("ping", flag.ContinueOnError)
	host := fs.String("host", "", "server host")
	port := fs.Int("port", models.DefaultServerPort, "server port")
	icon := fs.Bool("icon", false, "include the server icon")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return printMc(ctx, client, models.NewServer(*host).WithPort(*port).IncludeIcon(*icon))
}

func printMc(ctx context.Context, client *fluxpoint.Client, req models.McRequest) error {
	resp, err := client.GetMc(ctx, req)
	if err != nil {
		return err
	}
	if failed, ok := resp.(*models.FailedResponse); ok {
		return failed
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

// saveImage writes a generated image to path, optionally fitted into WxH
func saveImage(resp models.APIResponse, path, fit string) error {
	var img *models.GeneratedImage
	switch r := resp.(type) {
	case *models.GeneratedImage:
		img = r
	case *models.FailedResponse:
		return r
	default:
		return fmt.Errorf("unexpected response %T", resp)
	}

	if fit != "" {
		width, height, err := parseSize(fit)
		if err != nil {
			img.Close()
			return err
		}
		decoded, err := img.Decode()
		if err != nil {
			return err
		}
		if err := imaging.Save(imaging.Fit(decoded, width, height, imaging.Lanczos), path); err != nil {
			return fmt.Errorf("failed to save image: %w", err)
		}
		return nil
	}

	defer img.Close()
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if _, err := io.Copy(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to write image: %w", err)
	}
	return f.Close()
}

// parseSize parses "WxH" with both dimensions positive
func parseSize(s string) (int, int, error) {
	w, h, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("size %q must have the form WxH", s)
	}
	width, err := strconv.Atoi(w)
	if err != nil || width < 1 {
		return 0, 0, fmt.Errorf("invalid width in %q", s)
	}
	height, err := strconv.Atoi(h)
	if err != nil || height < 1 {
		return 0, 0, fmt.Errorf("invalid height in %q", s)
	}
	return width, height, nil
}

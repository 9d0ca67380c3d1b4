package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/skip2/go-qrcode"
	"github.com/urfave/cli/v2"
	"stellarsplit.app/payment-uri/common"
	"stellarsplit.app/payment-uri/models"
	"stellarsplit.app/payment-uri/paymenturi"
)

var fallbackFlag = &cli.StringFlag{
	Name:  "fallback",
	Usage: "origin of the web fallback link",
	Value: paymenturi.DefaultFallbackBaseURL,
}

var buildCommand = &cli.Command{
	Name:  "build",
	Usage: "Build a payment URI",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "destination", Usage: "Stellar account receiving the payment", Required: true},
		&cli.StringFlag{Name: "amount", Usage: "decimal amount, rounded to 7 places"},
		&cli.StringFlag{Name: "asset-code", Usage: "asset code, requires --asset-issuer"},
		&cli.StringFlag{Name: "asset-issuer", Usage: "asset issuer, requires --asset-code"},
		&cli.StringFlag{Name: "memo"},
		&cli.StringFlag{Name: "memo-type", Usage: models.MemoTypesText()},
		&cli.StringFlag{Name: "msg", Usage: "message shown to the payer"},
		&cli.StringFlag{Name: "callback"},
		&cli.StringFlag{Name: "split-id"},
		&cli.BoolFlag{Name: "links", Usage: "print the deep links as JSON instead of the URI"},
		fallbackFlag,
	},
	Action: build,
}

var parseCommand = &cli.Command{
	Name:      "parse",
	Usage:     "Parse a payment URI or scanned text, read from stdin when no argument is given",
	ArgsUsage: "[text]",
	Action:    parse,
}

var linksCommand = &cli.Command{
	Name:      "links",
	Usage:     "Derive the deep links of a payment URI",
	ArgsUsage: "<uri>",
	Flags:     []cli.Flag{fallbackFlag},
	Action:    links,
}

var extractCommand = &cli.Command{
	Name:      "extract",
	Usage:     "Extract the payment URI embedded in a page query string",
	ArgsUsage: "<query>",
	Action:    extract,
}

var qrCommand = &cli.Command{
	Name:      "qr",
	Usage:     "Write a payment URI as a PNG QR code",
	ArgsUsage: "<uri>",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "out", Usage: "PNG file to write", Required: true},
		&cli.IntFlag{Name: "size", Usage: "image size in pixels", Value: 256},
	},
	Action: writeQR,
}

func build(ctx *cli.Context) error {
	req := models.PaymentRequest{
		Destination: ctx.String("destination"),
		AssetCode:   optional(ctx, "asset-code"),
		AssetIssuer: optional(ctx, "asset-issuer"),
		Memo:        optional(ctx, "memo"),
		Message:     optional(ctx, "msg"),
		Callback:    optional(ctx, "callback"),
		SplitID:     optional(ctx, "split-id"),
	}
	if ctx.IsSet("amount") {
		amount, err := decimal.NewFromString(ctx.String("amount"))
		if err != nil {
			return cli.Exit(fmt.Sprintf("amount %q is not a number", ctx.String("amount")), 1)
		}
		req.Amount = &amount
	}
	if ctx.IsSet("memo-type") {
		req.MemoType = models.Memo(models.MemoType(ctx.String("memo-type")))
	}

	uri, err := paymenturi.Build(req)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	if ctx.Bool("links") {
		return printJSON(ctx, paymenturi.DeriveLinks(uri, paymenturi.WithFallbackBaseURL(ctx.String("fallback"))))
	}
	_, err = fmt.Fprintln(ctx.App.Writer, uri)
	return err
}

func parse(ctx *cli.Context) error {
	text := ctx.Args().First()
	if !ctx.Args().Present() {
		var err error
		text, err = readAll(ctx)
		if err != nil {
			return err
		}
	}

	parsed, err := paymenturi.Inspect(text)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	return printJSON(ctx, parsed)
}

func links(ctx *cli.Context) error {
	uri := ctx.Args().First()
	if uri == "" {
		return cli.Exit("missing payment URI", 1)
	}

	parsed, err := paymenturi.Inspect(uri)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	return printJSON(ctx, paymenturi.DeriveLinks(parsed.URI, paymenturi.WithFallbackBaseURL(ctx.String("fallback"))))
}

func extract(ctx *cli.Context) error {
	uri, ok := paymenturi.ExtractFromSearch(ctx.Args().First())
	if !ok {
		return cli.Exit("No payment URI found.", 1)
	}
	_, err := fmt.Fprintln(ctx.App.Writer, uri)
	return err
}

func writeQR(ctx *cli.Context) error {
	parsed, err := paymenturi.Inspect(ctx.Args().First())
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	err = qrcode.WriteFile(parsed.URI, qrcode.Medium, ctx.Int("size"), ctx.String("out"))
	if err != nil {
		return fmt.Errorf("could not write QR code: %w", err)
	}
	return nil
}

// optional maps an unset flag to an absent field and a flag set to "" to a
// present, empty one.
func optional(ctx *cli.Context, name string) *string {
	if !ctx.IsSet(name) {
		return nil
	}
	return models.String(ctx.String(name))
}

func printJSON(ctx *cli.Context, v interface{}) error {
	body, err := common.MarshalToString(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(ctx.App.Writer, string(body))
	return err
}

func readAll(ctx *cli.Context) (string, error) {
	var sb strings.Builder
	scanner := bufio.NewScanner(ctx.App.Reader)
	for scanner.Scan() {
		sb.WriteString(scanner.Text())
		sb.WriteString("\n")
	}
	return sb.String(), scanner.Err()
}

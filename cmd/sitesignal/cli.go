package main

import (
	"context"
	"io"
	"time"

	"github.com/sitesignal/sitesignal"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer

	Fetcher sitesignal.Fetcher
	Scraper sitesignal.Scraper

	// Close tears down the wired dependency chain (geocoder, cache DB).
	Close func() error
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Serve  ServeCmd  `cmd:"" help:"Run the scrape HTTP service."`
	Scrape ScrapeCmd `cmd:"" help:"Scrape a single URL and print the result as JSON."`

	Timeout     time.Duration `short:"t" default:"10s" env:"SITESIGNAL_FETCH_TIMEOUT" help:"Page fetch timeout."`
	TextLimit   int           `default:"20000" env:"SITESIGNAL_TEXT_LIMIT" help:"Visible text length bound."`
	MaxLookups  int           `default:"5" env:"SITESIGNAL_MAX_LOOKUPS" help:"Geocoding lookups per request."`
	CachePath   string        `default:":memory:" env:"SITESIGNAL_CACHE" help:"Geocode cache database path (:memory: keeps it process-local)."`
	GeocoderURL string        `default:"https://nominatim.openstreetmap.org" env:"SITESIGNAL_GEOCODER_URL" help:"Nominatim instance base URL."`
	Gemini      bool          `env:"SITESIGNAL_USE_GEMINI" help:"Use Gemini for entity recognition (requires GEMINI_API_KEY)."`
	Debug       bool          `help:"Enable debug logging."`
}

// ServeCmd runs the authenticated HTTP service.
type ServeCmd struct {
	Addr   string `default:":8080" env:"SITESIGNAL_ADDR" help:"Listen address."`
	Secret string `env:"SITESIGNAL_SECRET" help:"Shared secret for the Authorization header."`
}

// ScrapeCmd runs the pipeline once against a URL.
type ScrapeCmd struct {
	URL string `arg:"" required:"" help:"Page URL to scrape."`
}

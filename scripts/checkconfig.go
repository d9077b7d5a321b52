package main

import (
	"context"
	"fmt"
	"os"

	"go-landing-page/internal/siteconfig"
)

// Validates a site configuration document before it is published:
//
//	go run scripts/checkconfig.go public/config.json
func main() {
	if len(os.Args) != 2 {
		fmt.Println("usage: checkconfig <url-or-path>")
		os.Exit(2)
	}

	cfg, err := siteconfig.NewLoader(nil, siteconfig.DefaultTimeout).Load(context.Background(), os.Args[1])
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}

	fmt.Printf("Site: %s\nInterest options: %v\nSubmission endpoint: %s\n", cfg.DomainName, cfg.ContactFormOptions, cfg.ContactFormLambdaURL)
	if missing := cfg.MissingFields(); len(missing) > 0 {
		fmt.Printf("Missing fields (will render empty): %v\n", missing)
	}
}

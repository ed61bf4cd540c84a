package sheets

import (
	"context"
	"encoding/base64"
	"fmt"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/hilljasont-svg/Tradejournal/src/utils"
)

func setup(ctx context.Context, googleSecurityKeyJsonBase64 string) (*sheets.Service, *drive.Service, error) {
	// get bytes from base64 encoded google service accounts key
	credBytes, err := base64.StdEncoding.DecodeString(googleSecurityKeyJsonBase64)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to base64 decode googleSecurityKeyJsonBase64: %w", err)
	}

	config, err := google.JWTConfigFromJSON(credBytes, sheets.SpreadsheetsScope, drive.DriveScope)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get config from json: %w", err)
	}

	client := config.Client(ctx)

	srv, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, nil, fmt.Errorf("unable to retrieve Sheets client: %w", err)
	}

	driveService, err := drive.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, nil, fmt.Errorf("unable to retrieve Drive client: %w", err)
	}

	return srv, driveService, nil
}

func NewClient(ctx context.Context, googleSecurityKeyJsonBase64 string) (*sheets.Service, *drive.Service, error) {
	return setup(ctx, googleSecurityKeyJsonBase64)
}

func NewClientFromEnv(ctx context.Context) (*sheets.Service, *drive.Service, error) {
	googleSecurityKeyJsonBase64, err := utils.GetEnv("GOOGLE_SECURITY_KEY_JSON_BASE64")
	if err != nil {
		return nil, nil, fmt.Errorf("GOOGLE_SECURITY_KEY_JSON_BASE64 not set: %v", err)
	}

	return NewClient(ctx, googleSecurityKeyJsonBase64)
}

package firebase

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"

	"github.com/cse-connect/connect-backend/internal/config"
)

// InitFirebase creates the Admin SDK app for the configured project.
// Credentials come from GOOGLE_APPLICATION_CREDENTIALS (a file path),
// FIREBASE_SERVICE_ACCOUNT_JSON_BASE64, or Application Default Credentials
// when neither is set.
func InitFirebase(ctx context.Context, cfg *config.Config) (*firebase.App, error) {
	if cfg == nil {
		return nil, errors.New("InitFirebase: config cannot be nil")
	}
	if cfg.FirebaseProjectID == "" {
		return nil, errors.New("FIREBASE_PROJECT_ID must be set")
	}

	opts, err := clientOptions(cfg)
	if err != nil {
		return nil, err
	}

	conf := &firebase.Config{
		ProjectID: cfg.FirebaseProjectID,
	}

	app, err := firebase.NewApp(ctx, conf, opts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing Firebase app: %w", err)
	}
	return app, nil
}

func clientOptions(cfg *config.Config) ([]option.ClientOption, error) {
	switch {
	case cfg.GoogleApplicationCredentials != "":
		return []option.ClientOption{option.WithCredentialsFile(cfg.GoogleApplicationCredentials)}, nil
	case cfg.FirebaseServiceAccountJSONBase64 != "":
		jsonKey, err := base64.StdEncoding.DecodeString(cfg.FirebaseServiceAccountJSONBase64)
		if err != nil {
			return nil, errors.New("FIREBASE_SERVICE_ACCOUNT_JSON_BASE64 is not a valid base64 string")
		}
		return []option.ClientOption{option.WithCredentialsJSON(jsonKey)}, nil
	default:
		// Application Default Credentials (Cloud Run, GKE, gcloud auth).
		return nil, nil
	}
}

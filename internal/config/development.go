package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

func Development() bool {
	development, ok := os.LookupEnv("DEVELOPMENT")
	if !ok {
		return false
	}
	return development != "0"
}

// LoadDotEnv reads variables from a .env file in the working directory
// unless STAGE is "prod". A missing file is not an error. Variables that are
// already set win over the file.
func LoadDotEnv() error {
	if os.Getenv("STAGE") == "prod" {
		return nil
	}
	err := godotenv.Load(".env")
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

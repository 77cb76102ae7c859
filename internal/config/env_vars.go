package config

import (
	"fmt"
	"os"
)

const (
	portEnvVar       = "PORT"
	appNameVar       = "APP_NAME"
	folderEnvVar     = "FOLDER"
	usersFileEnvVar  = "USERS_FILE"
	hashSchemeEnvVar = "HASH_SCHEME"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetPort() string {
	port := GetEnv(portEnvVar, "8080")
	if port != "" && port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Go Login Service")
}

func (EnvVars) GetDataFolder() string {
	return GetEnv(folderEnvVar, "./data")
}

// GetUsersFile returns the file name of the JSON credential store inside the
// data folder.
func (EnvVars) GetUsersFile() string {
	return GetEnv(usersFileEnvVar, "users.json")
}

// GetHashScheme selects the password digest scheme ("sha256" or "bcrypt").
// The default stays sha256 for compatibility with stores written by earlier
// deployments.
func (EnvVars) GetHashScheme() string {
	return GetEnv(hashSchemeEnvVar, "sha256")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}

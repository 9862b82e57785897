package dotenv

import (
	"os"

	"github.com/joho/godotenv"
)

const (
	// ProdEnv is the value of PLATEFUL_ENV in production deployments.
	ProdEnv = "prod"
)

// LoadDotEnvs loads the .env files following the convention: https://github.com/bkeepers/dotenv#what-other-env-files-can-i-use
// It only need to be called once in main function, other code can use env through os.Getenv('ENV_NAME') during runtime
func LoadDotEnvs() error {
	loadDotEnvs("")
	return nil
}

func loadDotEnvs(rootPath string) {
	// check whether running in development, testing, production etc.
	env := os.Getenv("PLATEFUL_ENV")
	if env == "" {
		env = "dev"
	}

	// .env.[runtime_env].local has highest priority, usually contains username and password and other sensitive information
	godotenv.Load(rootPath + ".env." + env + ".local")
	godotenv.Load(rootPath + ".env.local")
	// .env.[runtime_env] usually contains db connection information
	godotenv.Load(rootPath + ".env." + env)
	// .env usually contains shared variables(which might be overwritten by envs above)
	godotenv.Load(rootPath + ".env")
}

// IsProdEnv returns true when running against the production environment.
func IsProdEnv() bool {
	return os.Getenv("PLATEFUL_ENV") == ProdEnv
}

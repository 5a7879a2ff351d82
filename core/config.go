package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var Conf *viper.Viper

func init() {
	Conf = viper.New()

	// defaults
	Conf.SetTypeByDefaultValue(true)
	Conf.SetDefault("debug", false)
	Conf.SetDefault("appName", "Gradebook")
	Conf.SetDefault("version", "dev")
	Conf.SetDefault("lang", "en") // number formatting of the CLI
	Conf.SetDefault("logLevel", "info")
	Conf.SetDefault("logPretty", true)
	Conf.SetDefault("rollbarToken", "")
	Conf.SetDefault("catalogPath", "") // empty: use the embedded catalog

	// curriculum rules
	Conf.SetDefault("rules.semesterCreditCap", 15.0)
	Conf.SetDefault("rules.exchangeCredits", 7.5)
	Conf.SetDefault("rules.exchangeCoursesPerSemester", 2)
	Conf.SetDefault("rules.internshipCredits", 7.5)
	Conf.SetDefault("rules.internshipHalf", "fall")
	Conf.SetDefault("rules.thesisCredits", 7.5)
	Conf.SetDefault("rules.electiveCredits", 7.5)
	Conf.SetDefault("rules.electiveSlots", 2)

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		Conf.SetDefault("testMode", true)
	}
	Conf.SetDefault("env", env)
	Conf.SetEnvPrefix(env)
	Conf.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(Getwd(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	Conf.AutomaticEnv()
}

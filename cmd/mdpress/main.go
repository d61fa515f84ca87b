// mdpress server binary. Configuration is read from mdpress.yaml in the
// working directory (or /etc/mdpress), overridable with MDPRESS_* env
// vars.
package main

import (
	"errors"
	"log"
	"strings"

	"github.com/spf13/viper"

	"github.com/inksmith/mdpress"
	"github.com/inksmith/mdpress/views"
)

func loadConfig() (mdpress.Config, error) {
	v := viper.New()
	v.SetConfigName("mdpress")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/mdpress")
	v.SetEnvPrefix("MDPRESS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("name", "Blog")
	v.SetDefault("url", "http://localhost:3000")
	v.SetDefault("addr", ":3000")
	v.SetDefault("posts_dir", "posts")
	// An explicit cache_ttl of 0 disables caching; this is only the
	// default for a missing key.
	v.SetDefault("cache_ttl", "10m")
	v.SetDefault("page_size", 10)
	v.SetDefault("feed", true)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return mdpress.Config{}, err
		}
		// No config file is fine; defaults and env carry it.
	}

	return mdpress.Config{
		Name:          v.GetString("name"),
		URL:           v.GetString("url"),
		Description:   v.GetString("description"),
		Author:        v.GetString("author"),
		Addr:          v.GetString("addr"),
		PostsDir:      v.GetString("posts_dir"),
		CacheTTL:      v.GetDuration("cache_ttl"),
		PageSize:      v.GetInt("page_size"),
		FeedEnabled:   v.GetBool("feed"),
		AnalyticsPath: v.GetString("analytics_path"),
	}, nil
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("mdpress: load config: %v", err)
	}

	app := mdpress.New(cfg, views.Default())
	defer app.Close()

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}

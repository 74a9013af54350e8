package config

// Config is the site configuration, populated by viper from config.yaml,
// PORTFOLIO_* environment variables, and defaults.
type Config struct {
	SiteTitle        string `mapstructure:"siteTitle"`
	BaseURL          string `mapstructure:"baseURL"`
	ContentDir       string `mapstructure:"contentDir"`
	LayoutsDir       string `mapstructure:"layoutsDir"`
	StaticDir        string `mapstructure:"staticDir"`
	OutputDir        string `mapstructure:"outputDir"`
	ProfilePath      string `mapstructure:"profilePath"`
	CandidateOverlay string `mapstructure:"candidateOverlay"`
	LogLevel         string `mapstructure:"logLevel"`
}

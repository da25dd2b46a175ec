package config

func DefaultSystemConfig() *SystemConfig {
	return &SystemConfig{
		DataDirectory: "~/.local/share/lawchat",
	}
}

func DefaultUserConfig() *UserConfig {
	return &UserConfig{
		Backend: BackendConfig{
			Endpoint:    DefaultEndpoint,
			CheckHealth: true,
		},
		UI: UIConfig{
			ShowTimestamps: true,
		},
	}
}

func GenerateSystemConfigTemplate() string {
	return `# lawchat System Configuration
# Location: ~/.config/lawchat/settings.toml
# This file uses TOML format: https://toml.io

# Directory where the user config, local storage and logs are kept
data_directory = "~/.local/share/lawchat"
`
}

func GenerateUserConfigTemplate() string {
	return `# lawchat User Configuration
# Location: <data_directory>/config.toml
# This file uses TOML format: https://toml.io

[backend]
# Question-answering endpoint (POST, JSON)
endpoint = "http://localhost:8000/ask"

# Per-request timeout as a Go duration ("30s", "2m").
# Leave empty to wait for the answer indefinitely.
request_timeout = ""

# Check GET /health on the same host at startup
check_health = true

[ui]
show_timestamps = true
`
}

package config

func GetDefault() Config {
	return Config{
		Output:      "CHANGELOG.md",
		ProjectFile: "package.json",
		Backend:     "git",
	}
}

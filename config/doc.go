// Package config loads the talentsearch configuration with Viper.
//
// Configuration is read from the file given on the command line or from
// config.{yaml,json,toml} in /etc/talentsearch, $HOME/.talentsearch, the
// working directory or the executable's directory. Every key can be
// overridden from the environment with the TALENTSEARCH_ prefix, dots
// replaced by underscores (TALENTSEARCH_SERVER_PORT).
//
// Example YAML:
//
//	app_name: talentsearch
//	run_mode: release
//	server:
//	  host: 0.0.0.0
//	  port: 8080
//	logger:
//	  level: 4
//	  format: json
//	data:
//	  search:
//	    default_engine: elasticsearch
//	    default_indexes: [talents]
//	    elasticsearch:
//	      addresses: ["http://localhost:9200"]
//	observes:
//	  sentry:
//	    endpoint: ""
//
// Watch reloads the file when it changes.
package config

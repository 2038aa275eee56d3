// Package config loads service settings from an optional YAML file and
// environment variables: listen address, model artifact location, the MinIO
// connection used when the artifact lives in object storage, and logging.
package config

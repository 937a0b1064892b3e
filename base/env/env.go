package env

import (
	"os"
)

// PodName is the k8s pod name, falling back to the host name outside k8s.
func PodName() string {
	if name := os.Getenv("PODNAME"); name != "" {
		return name
	}
	name, _ := os.Hostname()
	return name
}

// EnvName example: staging
func EnvName() string {
	return os.Getenv("ENV_NAME")
}

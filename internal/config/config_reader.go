package config

import (
	"bytes"
	"io"
	"os"
)

func GetConfigReader(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err == nil {
		return f, nil
	}

	var defaultConfigYaml = `semaphore:
  permits: 4
workers:
  count: 16
  iterations: 100
  permits_per_task: 1
  acquire_timeout: 500ms
payload:
  size_bytes: 65536
  compression: "zstd"
logging:
  level: "info"
  output: ""
`

	var bb bytes.Buffer
	if _, err = bb.WriteString(defaultConfigYaml); err != nil {
		return nil, err
	}

	return io.NopCloser(&bb), nil
}

// Command example walks through layered configuration: defaults, a
// discovered file, a branch overlay, provenance queries, and freezing.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/superhero/config"
)

func main() {
	dir, err := os.MkdirTemp("", "config-example-*")
	if err != nil {
		log.Fatalf("temp dir: %v", err)
	}
	defer os.RemoveAll(dir)

	base := []byte("[server]\nport = 3000\nhost = \"localhost\"\n")
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), base, 0644); err != nil {
		log.Fatalf("write config: %v", err)
	}
	prod := []byte("{\n  \"server\": { \"port\": 8443 }\n}\n")
	if err := os.WriteFile(filepath.Join(dir, "config-production.json"), prod, 0644); err != nil {
		log.Fatalf("write branch config: %v", err)
	}

	c, err := config.NewBuilder().
		WithDefaults(map[string]any{
			"app":    map[string]any{"name": "example"},
			"server": map[string]any{"port": 1234},
		}).
		WithFile(dir).
		Build()
	if err != nil {
		log.Fatalf("build: %v", err)
	}
	if err := c.LoadBranch(dir, "production"); err != nil {
		log.Fatalf("load branch: %v", err)
	}

	port, err := c.Int64("server/port")
	if err != nil {
		log.Fatalf("server/port: %v", err)
	}
	fmt.Println("server/port =", port)

	host := c.FindOr("server.host", "0.0.0.0")
	fmt.Println("server.host =", host)

	if layer, ok := c.FindLayerByPath("server/port"); ok {
		fmt.Println("port defined last by", layer)
	}
	for _, e := range c.ListLayersByPath("server/port") {
		fmt.Printf("  %s -> %v\n", e.Identifier, e.Value)
	}

	c.Freeze()
	if err := c.Assign(map[string]any{"late": true}, ""); err != nil {
		fmt.Println("after freeze:", err)
	}
}

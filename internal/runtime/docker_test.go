package runtime

import (
	"strings"
	"testing"

	"github.com/docker/docker/api/types/mount"
	"github.com/docker/go-connections/nat"

	"settingskit/pkg/runtime"
)

func TestContainerConfigs(t *testing.T) {
	opts := runtime.RunOptions{
		Image:            "jetbrains/teamcity-server:latest",
		Command:          []string{"run"},
		VolumeMounts:     map[string]string{"/tmp/b": "/data/b", "/tmp/a": "/data/a"},
		EnvVars:          map[string]string{"TEAMCITY_SERVER_MEM_OPTS": "-Xmx2g", "A": "1"},
		WorkingDirectory: "/opt",
		Ports:            map[int]int{8111: 8112},
	}

	cfg, host, err := containerConfigs(opts)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.Image != opts.Image || cfg.WorkingDir != "/opt" {
		t.Errorf("Unexpected container config: %+v", cfg)
	}
	if strings.Join(cfg.Env, ",") != "A=1,TEAMCITY_SERVER_MEM_OPTS=-Xmx2g" {
		t.Errorf("Expected sorted env vars, got %v", cfg.Env)
	}

	if len(host.Mounts) != 2 || host.Mounts[0].Source != "/tmp/a" || host.Mounts[0].Target != "/data/a" {
		t.Errorf("Expected sorted bind mounts, got %+v", host.Mounts)
	}
	for _, m := range host.Mounts {
		if m.Type != mount.TypeBind {
			t.Errorf("Expected bind mount, got %s", m.Type)
		}
	}

	port := nat.Port("8111/tcp")
	if _, ok := cfg.ExposedPorts[port]; !ok {
		t.Errorf("Expected port %s to be exposed, got %v", port, cfg.ExposedPorts)
	}
	bindings := host.PortBindings[port]
	if len(bindings) != 1 || bindings[0].HostPort != "8112" || bindings[0].HostIP != "127.0.0.1" {
		t.Errorf("Expected %s bound to 127.0.0.1:8112, got %+v", port, bindings)
	}
}

func TestContainerConfigs_NoPorts(t *testing.T) {
	cfg, host, err := containerConfigs(runtime.RunOptions{Image: "alpine"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(cfg.ExposedPorts) != 0 || len(host.PortBindings) != 0 || len(host.Mounts) != 0 {
		t.Errorf("Expected an empty host config, got %+v", host)
	}
}

func TestNewDockerRuntime_RequiresDockerDaemon(t *testing.T) {
	// Succeeds when a daemon is reachable; otherwise the error must say which
	// step failed.
	_, err := NewDockerRuntime()
	if err == nil {
		return
	}
	msg := err.Error()
	if !strings.HasPrefix(msg, "failed to create Docker client") && !strings.HasPrefix(msg, "failed to connect to Docker daemon") {
		t.Errorf("Unexpected error format: %s", msg)
	}
}

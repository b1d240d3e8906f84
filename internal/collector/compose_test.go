package collector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acourtel/stackgraph/internal/config"
	"github.com/acourtel/stackgraph/internal/model"
)

func serviceNamed(snap *model.Snapshot, name string) *model.Service {
	for i := range snap.Services {
		if snap.Services[i].Name == name {
			return &snap.Services[i]
		}
	}
	return nil
}

func TestComposeCollectStandardFile(t *testing.T) {
	cc := &ComposeCollector{
		Files: []config.ComposeFile{
			{Path: "../../testdata/compose/docker-compose.yml", Server: "atlas"},
		},
	}

	snap := &model.Snapshot{}
	require.NoError(t, cc.Collect(snap))

	require.Len(t, snap.Servers, 1)
	assert.Equal(t, "atlas", snap.Servers[0].Name)
	require.Len(t, snap.Services, 2)

	web := serviceNamed(snap, "web")
	require.NotNil(t, web)
	assert.True(t, web.RunsOn(snap.Servers[0].ID))

	db := serviceNamed(snap, "db")
	require.NotNil(t, db)

	// depends_on db becomes an internal dependency, external_links a
	// pink external one.
	require.Len(t, web.Dependencies, 2)
	var internal, external *model.Dependency
	for i := range web.Dependencies {
		if web.Dependencies[i].Internal() {
			internal = &web.Dependencies[i]
		} else {
			external = &web.Dependencies[i]
		}
	}
	require.NotNil(t, internal)
	assert.Equal(t, db.ID, internal.DependencyServiceID)
	require.NotNil(t, external)
	assert.Equal(t, "legacy-db", external.ExternalServiceName)
	assert.Equal(t, "container", external.ExternalType)
}

func TestComposeCollectTemplate(t *testing.T) {
	cc := &ComposeCollector{
		Files: []config.ComposeFile{
			{Path: "../../testdata/compose/template.yml.j2", Server: "hermes", Template: true},
		},
	}

	snap := &model.Snapshot{}
	require.NoError(t, cc.Collect(snap))

	pdf := serviceNamed(snap, "pdf-tools")
	require.NotNil(t, pdf)
	cache := serviceNamed(snap, "cache")
	require.NotNil(t, cache)

	require.Len(t, pdf.Dependencies, 1)
	assert.Equal(t, cache.ID, pdf.Dependencies[0].DependencyServiceID)
}

func TestComposeScanDirectory(t *testing.T) {
	cc := &ComposeCollector{
		ScanDirs: []config.ScanDir{
			{Path: "../../testdata/compose", Server: "atlas"},
		},
	}

	snap := &model.Snapshot{}
	require.NoError(t, cc.Collect(snap))

	// Only files matching the compose patterns count; the .j2 template
	// needs explicit configuration.
	assert.NotNil(t, serviceNamed(snap, "web"))
	assert.NotNil(t, serviceNamed(snap, "db"))
	assert.Nil(t, serviceNamed(snap, "pdf-tools"))
}

func TestComposeCollectReusesServer(t *testing.T) {
	snap := &model.Snapshot{
		Servers: []model.Server{{ID: 7, Name: "atlas"}},
	}

	cc := &ComposeCollector{
		Files: []config.ComposeFile{
			{Path: "../../testdata/compose/docker-compose.yml", Server: "atlas"},
		},
	}
	require.NoError(t, cc.Collect(snap))

	require.Len(t, snap.Servers, 1)
	web := serviceNamed(snap, "web")
	require.NotNil(t, web)
	assert.True(t, web.RunsOn(7))
}

func TestComposeDependencyIDsUnique(t *testing.T) {
	cc := &ComposeCollector{
		Files: []config.ComposeFile{
			{Path: "../../testdata/compose/docker-compose.yml", Server: "atlas"},
			{Path: "../../testdata/compose/template.yml.j2", Server: "hermes", Template: true},
		},
	}

	snap := &model.Snapshot{}
	require.NoError(t, cc.Collect(snap))

	seen := map[int]bool{}
	for _, svc := range snap.Services {
		for _, dep := range svc.Dependencies {
			assert.False(t, seen[dep.ID], "dependency id %d reused", dep.ID)
			seen[dep.ID] = true
		}
	}
}

func TestComposeEnabled(t *testing.T) {
	cc := &ComposeCollector{}

	assert.False(t, cc.Enabled(map[string]any{}))
	assert.False(t, cc.Enabled(map[string]any{"compose": map[string]any{}}))
	assert.True(t, cc.Enabled(map[string]any{
		"compose": map[string]any{
			"files": []any{map[string]any{"path": "docker-compose.yml"}},
		},
	}))
	assert.True(t, cc.Enabled(map[string]any{
		"compose": map[string]any{
			"scan_dirs": []any{map[string]any{"path": "/srv"}},
		},
	}))
}

func TestComposeConfigure(t *testing.T) {
	cc := &ComposeCollector{}
	require.NoError(t, cc.Configure(map[string]any{
		"files": []any{
			map[string]any{"path": "a.yml", "server": "atlas", "template": true},
		},
		"scan_dirs": []any{
			map[string]any{"path": "/srv", "server": "hermes"},
		},
	}))

	require.Len(t, cc.Files, 1)
	assert.Equal(t, config.ComposeFile{Path: "a.yml", Server: "atlas", Template: true}, cc.Files[0])
	require.Len(t, cc.ScanDirs, 1)
	assert.Equal(t, config.ScanDir{Path: "/srv", Server: "hermes"}, cc.ScanDirs[0])
}

func TestComposeValidate(t *testing.T) {
	cc := &ComposeCollector{
		Files:    []config.ComposeFile{{Path: "../../testdata/compose/docker-compose.yml"}},
		ScanDirs: []config.ScanDir{{Path: "../../testdata/compose"}},
	}
	assert.Empty(t, cc.Validate())

	cc = &ComposeCollector{
		Files:    []config.ComposeFile{{Path: "missing.yml"}},
		ScanDirs: []config.ScanDir{{Path: "missing-dir"}},
	}
	assert.Len(t, cc.Validate(), 2)
}

package catalog_test

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/saaskit-dev/upshift/pkg/catalog"
	"github.com/stretchr/testify/require"
)

func TestLoadOrdersMigrations(t *testing.T) {
	// Map iteration order is randomized, which doubles as a check that
	// ordering never depends on enumeration order.
	fsys := fstest.MapFS{
		"1.0.10/1_a.sql":  {Data: []byte("SELECT 1;")},
		"1.0.2/1_a.sql":   {Data: []byte("SELECT 1;")},
		"0.9.0/1_a.sql":   {Data: []byte("SELECT 1;")},
		"Initial/1_a.sql": {Data: []byte("SELECT 1;")},
	}

	cat, err := catalog.Load(fsys)
	require.NoError(t, err)

	var versions []string
	for _, m := range cat.Migrations() {
		versions = append(versions, m.Version)
	}

	require.Equal(t, []string{"Initial", "0.9.0", "1.0.2", "1.0.10"}, versions)
}

func TestLoadSkipsDirectoriesWithoutScripts(t *testing.T) {
	fsys := fstest.MapFS{
		"Initial/1_a.sql":    {Data: []byte("SELECT 1;")},
		"1.0.1/notes.txt":    {Data: []byte("nothing to run")},
		"attic":              {Mode: fs.ModeDir | 0o755},
		"stray.sql":          {Data: []byte("SELECT 1;")},
		"1.0.2/1_a.sql":      {Data: []byte("SELECT 1;")},
		"1.0.2/helper.ps1":   {Data: []byte("ignored")},
		"1.0.2/sub/deep.sql": {Data: []byte("ignored, not immediate")},
	}

	cat, err := catalog.Load(fsys)
	require.NoError(t, err)
	require.Len(t, cat.Migrations(), 2)

	m := cat.Migrations()[1]
	require.Equal(t, "1.0.2", m.Version)
	require.Equal(t, []string{"1_a.sql"}, m.Scripts)
}

func TestLoadSortsScriptsByteWise(t *testing.T) {
	fsys := fstest.MapFS{
		"1.0.1/2_c.sql":  {Data: []byte("SELECT 1;")},
		"1.0.1/10_b.sql": {Data: []byte("SELECT 1;")},
		"1.0.1/1_a.sql":  {Data: []byte("SELECT 1;")},
	}

	cat, err := catalog.Load(fsys)
	require.NoError(t, err)
	require.Len(t, cat.Migrations(), 1)

	// Byte comparison: '0' sorts before '_', so 10_b.sql precedes 1_a.sql.
	require.Equal(t, []string{"10_b.sql", "1_a.sql", "2_c.sql"}, cat.Migrations()[0].Scripts)
}

func TestLoadAttachesDescriptions(t *testing.T) {
	long := strings.Repeat("x", 600)

	fsys := fstest.MapFS{
		"Initial/1_a.sql":         {Data: []byte("SELECT 1;")},
		"Initial/description.txt": {Data: []byte("Baseline schema.\n")},
		"1.0.1/1_a.sql":           {Data: []byte("SELECT 1;")},
		"1.0.1/description.txt":   {Data: []byte(long)},
		"1.0.2/1_a.sql":           {Data: []byte("SELECT 1;")},
	}

	cat, err := catalog.Load(fsys)
	require.NoError(t, err)

	byVersion := make(map[string]*catalog.Migration)
	for _, m := range cat.Migrations() {
		byVersion[m.Version] = m
	}

	require.Equal(t, "Baseline schema.", byVersion["Initial"].Description)
	require.Len(t, byVersion["1.0.1"].Description, catalog.DescriptionLimit)
	require.Empty(t, byVersion["1.0.2"].Description)
}

func TestLoadMalformedVersionsSortAsZero(t *testing.T) {
	fsys := fstest.MapFS{
		"Initial/1_a.sql":  {Data: []byte("SELECT 1;")},
		"hotfix-b/1_a.sql": {Data: []byte("SELECT 1;")},
		"hotfix-a/1_a.sql": {Data: []byte("SELECT 1;")},
		"0.0.1/1_a.sql":    {Data: []byte("SELECT 1;")},
	}

	cat, err := catalog.Load(fsys)
	require.NoError(t, err)

	var versions []string
	for _, m := range cat.Migrations() {
		versions = append(versions, m.Version)
	}

	// Baseline always first; the malformed names parse as 0.0.0 and order
	// before 0.0.1, tied among themselves by raw name.
	require.Equal(t, []string{"Initial", "hotfix-a", "hotfix-b", "0.0.1"}, versions)
}

func TestLoadEmptyRoot(t *testing.T) {
	cat, err := catalog.Load(fstest.MapFS{})
	require.NoError(t, err)
	require.Empty(t, cat.Migrations())
}

func TestLoadMissingRoot(t *testing.T) {
	_, err := catalog.Load(os.DirFS(filepath.Join(t.TempDir(), "nope")))
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to read migrations directory")
}

func TestBaselineAndLatest(t *testing.T) {
	tests := []struct {
		name         string
		fsys         fstest.MapFS
		wantBaseline string
		wantLatest   string
	}{
		{
			name: "both present",
			fsys: fstest.MapFS{
				"Initial/1_a.sql": {Data: []byte("SELECT 1;")},
				"1.0.1/1_a.sql":   {Data: []byte("SELECT 1;")},
				"1.2.0/1_a.sql":   {Data: []byte("SELECT 1;")},
			},
			wantBaseline: "Initial",
			wantLatest:   "1.2.0",
		},
		{
			name: "baseline only",
			fsys: fstest.MapFS{
				"Initial/1_a.sql": {Data: []byte("SELECT 1;")},
			},
			wantBaseline: "Initial",
			wantLatest:   "",
		},
		{
			name: "no baseline",
			fsys: fstest.MapFS{
				"1.0.1/1_a.sql": {Data: []byte("SELECT 1;")},
			},
			wantBaseline: "",
			wantLatest:   "1.0.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat, err := catalog.Load(tt.fsys)
			require.NoError(t, err)

			if tt.wantBaseline == "" {
				require.Nil(t, cat.Baseline())
			} else {
				require.Equal(t, tt.wantBaseline, cat.Baseline().Version)
			}

			if tt.wantLatest == "" {
				require.Nil(t, cat.Latest())
			} else {
				require.Equal(t, tt.wantLatest, cat.Latest().Version)
			}
		})
	}
}

func TestPending(t *testing.T) {
	fsys := fstest.MapFS{
		"Initial/1_a.sql": {Data: []byte("SELECT 1;")},
		"1.0.1/1_a.sql":   {Data: []byte("SELECT 1;")},
		"1.0.2/1_a.sql":   {Data: []byte("SELECT 1;")},
		"2.0.0/1_a.sql":   {Data: []byte("SELECT 1;")},
	}

	cat, err := catalog.Load(fsys)
	require.NoError(t, err)

	executed := func(versions ...string) map[string]struct{} {
		set := make(map[string]struct{}, len(versions))
		for _, v := range versions {
			set[v] = struct{}{}
		}
		return set
	}

	versionsOf := func(ms []*catalog.Migration) []string {
		var out []string
		for _, m := range ms {
			out = append(out, m.Version)
		}
		return out
	}

	tests := []struct {
		name     string
		executed map[string]struct{}
		target   string
		want     []string
	}{
		{
			name:     "everything pending without a target",
			executed: executed(),
			want:     []string{"Initial", "1.0.1", "1.0.2", "2.0.0"},
		},
		{
			name:     "executed versions drop out",
			executed: executed("Initial", "1.0.1"),
			want:     []string{"1.0.2", "2.0.0"},
		},
		{
			name:     "target bound is inclusive",
			executed: executed("Initial"),
			target:   "1.0.2",
			want:     []string{"1.0.1", "1.0.2"},
		},
		{
			name:     "unexecuted baseline is due for any target",
			executed: executed(),
			target:   "1.0.1",
			want:     []string{"Initial", "1.0.1"},
		},
		{
			name:     "nothing pending",
			executed: executed("Initial", "1.0.1", "1.0.2", "2.0.0"),
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var target *catalog.Version
			if tt.target != "" {
				v := catalog.ParseVersion(tt.target)
				target = &v
			}

			got := cat.Pending(tt.executed, target)
			require.Equal(t, tt.want, versionsOf(got))
		})
	}
}

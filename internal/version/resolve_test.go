package version

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRequest(t *testing.T) {
	tests := []struct {
		version string
		branch  string
		want    Request
	}{
		{"", "main", Request{Kind: KindBranch, Value: "main"}},
		{"  ", "dev", Request{Kind: KindBranch, Value: "dev"}},
		{"latest", "main", Request{Kind: KindLatest, Value: "latest"}},
		{"pkg/0.1.0", "main", Request{Kind: KindExact, Value: "pkg/0.1.0"}},
		{">=0.3.2", "main", Request{Kind: KindRange, Value: ">=0.3.2"}},
		{"1.0.0", "main", Request{Kind: KindRange, Value: "1.0.0"}},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			require.Equal(t, tt.want, ParseRequest(tt.version, tt.branch))
		})
	}
}

func TestParseTag(t *testing.T) {
	tests := []struct {
		name       string
		wantPrefix string
		wantVer    string
	}{
		{"pkg/0.1.0", "pkg", "0.1.0"},
		{"packages/card/v1.2.3", "packages/card", "1.2.3"},
		{"v2.0.0", "", "2.0.0"},
		{"1.0", "", "1.0.0"},
		{"pkg/1.0.0-rc.1", "pkg", "1.0.0-rc.1"},
		{"stable", "", ""},
		{"pkg/", "pkg", ""},
		{"pkg/v", "pkg", ""},
		{"pkg/vv1.0.0", "pkg", ""},
		{"pkg/Vv1.0.0", "pkg", ""},
		{"V1.0.0", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tag := ParseTag(tt.name)
			require.Equal(t, tt.wantPrefix, tag.Prefix)

			if tt.wantVer == "" {
				require.True(t, tag.Raw())

				return
			}

			require.False(t, tag.Raw())
			require.Equal(t, tt.wantVer, tag.Version.String())
		})
	}
}

func TestResolve_Latest(t *testing.T) {
	tests := []struct {
		name string
		tags []string
		want string
	}{
		{"max version", []string{"pkg/0.1.0", "pkg/0.2.0", "pkg/0.1.1"}, "pkg/0.2.0"},
		{"numeric not lexical", []string{"pkg/0.9.0", "pkg/0.10.0"}, "pkg/0.10.0"},
		{"release beats prerelease", []string{"pkg/1.0.0-rc.1", "pkg/1.0.0"}, "pkg/1.0.0"},
		{"raw tags ignored", []string{"stable", "pkg/0.1.0", "nightly"}, "pkg/0.1.0"},
		{"across prefixes", []string{"a/0.3.0", "b/1.0.0", "c/0.9.9"}, "b/1.0.0"},
		{"tie breaks on last name", []string{"b/1.0.0", "a/1.0.0"}, "b/1.0.0"},
		{"v prefix tie", []string{"v1.0.0", "1.0.0"}, "v1.0.0"},
		{"doubled v is raw", []string{"pkg/vv9.0.0", "pkg/1.0.0"}, "pkg/1.0.0"},
		{"build metadata tie", []string{"pkg/1.0.0+b", "pkg/1.0.0+a"}, "pkg/1.0.0+b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.tags, ParseRequest(Latest, "main"))
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_LatestTieIsOrderIndependent(t *testing.T) {
	a, err := Resolve([]string{"x/1.0.0", "y/1.0.0"}, ParseRequest(Latest, ""))
	require.NoError(t, err)

	b, err := Resolve([]string{"y/1.0.0", "x/1.0.0"}, ParseRequest(Latest, ""))
	require.NoError(t, err)

	require.Equal(t, "y/1.0.0", a)
	require.Equal(t, a, b)
}

func TestResolve_Range(t *testing.T) {
	tags := []string{"pkg/0.1.0", "pkg/0.1.1", "pkg/0.2.0", "pkg/1.0.0-beta", "stable"}

	tests := []struct {
		expr string
		want string
	}{
		{">=0.1.0,<0.2.0", "pkg/0.1.1"},
		{">=0.1.0, <0.2.0", "pkg/0.1.1"},
		{">=0.1.0", "pkg/0.2.0"},
		{"==0.1.0", "pkg/0.1.0"},
		{"0.1.0", "pkg/0.1.0"},
		{">=0.1.0,!=0.2.0", "pkg/0.1.1"},
		{"<0.1.1", "pkg/0.1.0"},
		{"<=0.1.1", "pkg/0.1.1"},
		{">0.1.0,!=0.1.1", "pkg/0.2.0"},
		{"stable", "stable"},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := Resolve(tags, ParseRequest(tt.expr, "main"))
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_PartialOperands(t *testing.T) {
	tags := []string{"pkg/1.2.0", "pkg/1.2.5", "pkg/1.3.0"}

	tests := []struct {
		expr string
		want string
	}{
		{"<=1.2", "pkg/1.2.0"},
		{"==1.2", "pkg/1.2.0"},
		{"=1.2", "pkg/1.2.0"},
		{"1.2", "pkg/1.2.0"},
		{"v1.2", "pkg/1.2.0"},
		{">1.2", "pkg/1.3.0"},
		{">1.2,<1.3", "pkg/1.2.5"},
		{"!=1.2,<1.3", "pkg/1.2.5"},
		{">=1,<1.2.5", "pkg/1.2.0"},
		{"<1.3", "pkg/1.2.5"},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := Resolve(tags, ParseRequest(tt.expr, "main"))
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParseRange_RejectsUnsupportedSyntax(t *testing.T) {
	for _, expr := range []string{
		"^1.0",
		"~1.2",
		"~=1.2",
		"1.x",
		"1.2.*",
		"*",
		">=1.0 || <0.5",
		">=1.0 <2.0",
		"1.0 - 2.0",
		">=1.0,",
		",<2.0",
		">=vv1.0",
		"===1.0",
		"   ",
	} {
		t.Run(expr, func(t *testing.T) {
			_, err := ParseRange(expr)
			require.ErrorIs(t, err, ErrInvalidRange)

			var re *RangeError
			require.True(t, errors.As(err, &re))
			require.Equal(t, expr, re.Range)
		})
	}
}

func TestResolve_ExactIsVerbatim(t *testing.T) {
	got, err := Resolve(nil, ParseRequest("pkg/9.9.9", "main"))
	require.NoError(t, err)
	require.Equal(t, "pkg/9.9.9", got)

	got, err = Resolve([]string{"pkg/0.1.0"}, ParseRequest("other/not-a-version", "main"))
	require.NoError(t, err)
	require.Equal(t, "other/not-a-version", got)
}

func TestResolve_Failures(t *testing.T) {
	t.Run("no tags latest", func(t *testing.T) {
		_, err := Resolve(nil, ParseRequest(Latest, ""))
		require.ErrorIs(t, err, ErrNoTags)
	})

	t.Run("no tags range", func(t *testing.T) {
		_, err := Resolve([]string{}, ParseRequest(">=1.0.0", ""))
		require.ErrorIs(t, err, ErrNoTags)
	})

	t.Run("zero parseable", func(t *testing.T) {
		_, err := Resolve([]string{"stable", "nightly", "pkg/main"}, ParseRequest(Latest, ""))
		require.ErrorIs(t, err, ErrNoMatch)
		require.NotErrorIs(t, err, ErrNoTags)
	})

	t.Run("range matches nothing", func(t *testing.T) {
		_, err := Resolve([]string{"pkg/0.1.0"}, ParseRequest(">=2.0.0", ""))
		require.ErrorIs(t, err, ErrNoMatch)

		var nm *NoMatchError
		require.True(t, errors.As(err, &nm))
		require.Equal(t, ">=2.0.0", nm.Request)
	})

	t.Run("malformed range", func(t *testing.T) {
		_, err := Resolve([]string{"pkg/0.1.0"}, ParseRequest(">=>banana", ""))
		require.ErrorIs(t, err, ErrInvalidRange)
		require.NotErrorIs(t, err, ErrNoMatch)

		var re *RangeError
		require.True(t, errors.As(err, &re))
		require.Equal(t, ">=>banana", re.Range)
	})
}

func TestResolve_Scope(t *testing.T) {
	tags := []string{"a/0.1.0", "a/0.2.0", "b/1.0.0", "a/sub/3.0.0"}

	got, err := Resolve(tags, ParseRequest(Latest, "").WithScope("a"))
	require.NoError(t, err)
	require.Equal(t, "a/0.2.0", got)

	got, err = Resolve(tags, ParseRequest("<0.2.0", "").WithScope("a/"))
	require.NoError(t, err)
	require.Equal(t, "a/0.1.0", got)

	_, err = Resolve(tags, ParseRequest(Latest, "").WithScope("c"))
	require.ErrorIs(t, err, ErrNoMatch)

	got, err = Resolve(tags, ParseRequest(Latest, ""))
	require.NoError(t, err)
	require.Equal(t, "a/sub/3.0.0", got)
}

func TestSort(t *testing.T) {
	versioned, raw := Sort([]string{"pkg/0.2.0", "stable", "pkg/0.10.0", "pkg/0.1.0", "v0.2.0"})

	names := make([]string, 0, len(versioned))
	for _, tag := range versioned {
		names = append(names, tag.Name)
	}

	require.Equal(t, []string{"pkg/0.1.0", "pkg/0.2.0", "v0.2.0", "pkg/0.10.0"}, names)
	require.Equal(t, []string{"stable"}, raw)
}

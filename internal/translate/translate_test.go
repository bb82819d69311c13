package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslateDefines(t *testing.T) {
	flag, err := Translate(CC, GCC, "defines", "FOO")
	require.NoError(t, err)
	assert.Equal(t, "-DFOO", flag)
}

func TestTranslateDefinesEscapesQuotes(t *testing.T) {
	flag, err := Translate(CC, GCC, "defines", `NAME="x"`)
	require.NoError(t, err)
	assert.Equal(t, `-DNAME=\"x\"`, flag)
}

func TestTranslateLinks(t *testing.T) {
	flag, err := Translate(LD, GCC, "links", "pthread")
	require.NoError(t, err)
	assert.Equal(t, "-lpthread", flag)
}

func TestTranslateFrameworks(t *testing.T) {
	flag, err := Translate(LD, Clang, "frameworks", "CoreFoundation")
	require.NoError(t, err)
	assert.Equal(t, "-framework CoreFoundation", flag)
}

func TestTranslateRpathGCCRewritesLoaderPath(t *testing.T) {
	flag, err := Translate(LD, GXX, "rpathdirs", "@loader_path/.")
	require.NoError(t, err)
	assert.Equal(t, "-Wl,-rpath='$$ORIGIN/.'", flag)
}

func TestTranslateRpathClangRewritesOrigin(t *testing.T) {
	flag, err := Translate(LD, ClangXX, "rpathdirs", "$ORIGIN/.")
	require.NoError(t, err)
	assert.Equal(t, "-Xlinker -rpath -Xlinker @loader_path/.", flag)
}

func TestTranslateStripAllDiffersByFamily(t *testing.T) {
	gcc, _ := Translate(LD, GCC, "strip", "all")
	clang, _ := Translate(LD, Clang, "strip", "all")
	assert.Equal(t, "-s", gcc)
	assert.Equal(t, "-Wl,-x", clang)
}

func TestTranslateOptimizesSmallestDiffersByFamily(t *testing.T) {
	gcc, _ := Translate(CC, GCC, "optimizes", "smallest")
	clang, _ := Translate(CC, Clang, "optimizes", "smallest")
	assert.Equal(t, "-Os", gcc)
	assert.Equal(t, "-Oz", clang)
}

func TestTranslateWarnings(t *testing.T) {
	cases := map[string]string{
		"all": "-Wall", "more": "-Wall", "less": "-Wall",
		"allextra": "-Wall -Wextra", "everything": "-Wall -Wextra",
		"error": "-Werror", "none": "-w",
	}
	for value, want := range cases {
		flag, err := Translate(CC, GCC, "warnings", value)
		require.NoError(t, err)
		assert.Equal(t, want, flag, value)
	}
}

func TestTranslateLanguagesCxx17(t *testing.T) {
	flag, err := Translate(CXX, GXX, "languages", "c++17")
	require.NoError(t, err)
	assert.Equal(t, "-std=c++17", flag)
}

func TestTranslateLanguagesGnuxxAlias(t *testing.T) {
	flag, err := Translate(CXX, GXX, "languages", "gnu++14")
	require.NoError(t, err)
	assert.Equal(t, "-std=gnu++14", flag)
}

func TestTranslateLanguagesUnknownCxxIsFatal(t *testing.T) {
	_, err := Translate(CXX, GXX, "languages", "c++99")
	require.Error(t, err)
	var target *UnknownLanguageError
	assert.ErrorAs(t, err, &target)
}

func TestTranslateLanguagesAnsi(t *testing.T) {
	flag, err := Translate(CC, GCC, "languages", "ansi")
	require.NoError(t, err)
	assert.Equal(t, "-ansi", flag)
}

func TestTranslateUnknownItemNameIsFatal(t *testing.T) {
	_, err := Translate(CC, GCC, "bogus", "x")
	require.Error(t, err)
	var target *UnknownItemNameError
	assert.ErrorAs(t, err, &target)
}

func TestTranslateUnknownToolNameIsFatal(t *testing.T) {
	_, err := Translate(CC, ToolName("msvc"), "defines", "X")
	require.Error(t, err)
	var target *UnknownToolNameError
	assert.ErrorAs(t, err, &target)
}

func TestTranslateAll(t *testing.T) {
	out, err := TranslateAll(CC, GCC, "defines", []string{"A", "B"})
	require.NoError(t, err)
	assert.Equal(t, " -DA -DB", out)
}

func TestTranslateAllSkipsUnknownValuesSilently(t *testing.T) {
	out, err := TranslateAll(CC, GCC, "optimizes", []string{"bogus", "fast"})
	require.NoError(t, err)
	assert.Equal(t, " -O1", out)
}

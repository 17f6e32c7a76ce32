package clang

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/coachassist/backend/internal/geometry"
	"github.com/coachassist/backend/internal/strategy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addFieldRegion(t *testing.T, m *strategy.Model, name string, x1, y1, x2, y2 float64) {
	t.Helper()
	require.NoError(t, m.AddRegion(name, geometry.ToInternal(geometry.NewRect(x1, y1, x2, y2))))
}

func defenceModel(t *testing.T) *strategy.Model {
	t.Helper()
	m := strategy.NewModel()
	addFieldRegion(t, m, "Def", -52.5, -34, 0, 34)
	require.NoError(t, m.MarkPartition("Def"))
	require.NoError(t, m.SetPlayerCoefs(0, "Def", geometry.NewCoefs(1, 1, 0, 0)))
	return m
}

const defRule = `(say (define (definerule RULE_Def01 direc ((bpos "Def")(do our {1} (pos (((pt ball) * (pt  1.0  1.0)) + (pt  0.0  0.0)) )) ))))`

func TestGenerateDefaultOptions(t *testing.T) {
	got := NewGenerator(defenceModel(t), DefaultOptions()).Generate()

	want := strings.Join([]string{
		`# Regions Definitions`,
		`(say (define (definer "Def" (rec (pt -52.5  -34.0) (pt 0.0  34.0) ) )))`,
		``,
		`# CACR: Coach Assistant Created Region`,
		`(say (define (definer "CACR_ShootingReg" (rec (pt 40 -18)(pt 52.5 18)) )))`,
		``,
		`(say (define (definec "cnd_nonplayons" (not (playm play_on)) )))`,
		``,
		``,
		`# Positionings`,
		`# Def`,
		defRule,
		``,
		`# A Simple Passing`,
		`(say (define (definerule RULE_GENERAL_PASSING direc ((true) (do our {0} (pass {0})) ))))`,
		``,
		`# Play when it is not play on`,
		`(say (define (definerule RULE_PASS_NONPLAYONS direc ("cnd_nonplayons" (do our {0} (pass {0}))) )))`,
		``,
		`# A Simple Shooting`,
		`(say (define (definerule RULE_SHOOT direc ((and (bowner our {X}) (bpos "CACR_ShootingReg")) (do our {X} (shoot))) )))`,
		``,
		``,
		`(say (rule (on all)))`,
		``,
	}, "\n")

	assert.Equal(t, want, got)
}

func TestGenerateWithoutShooting(t *testing.T) {
	opts := DefaultOptions()
	opts.EnableShooting = false

	got := NewGenerator(defenceModel(t), opts).Generate()

	assert.NotContains(t, got, ShootingRegion)
	assert.NotContains(t, got, "RULE_SHOOT")
	assert.Contains(t, got, defRule)
	assert.True(t, strings.HasSuffix(got, "(say (rule (on all)))\n"))
}

func TestGenerateSkipsStaleCoefs(t *testing.T) {
	m := defenceModel(t)
	addFieldRegion(t, m, "Att", 0, -34, 52.5, 34)
	require.NoError(t, m.SetPlayerCoefs(3, "Att", geometry.NewCoefs(0.5, 0.5, 1, 1)))
	require.NoError(t, m.SetPlayerCoefs(3, "Ghost", geometry.NewCoefs(0.5, 0.5, 1, 1)))

	got := NewGenerator(m, DefaultOptions()).Generate()

	assert.NotContains(t, got, "RULE_Att04")
	assert.NotContains(t, got, "RULE_Ghost04")
	assert.NotContains(t, got, "# Att\n")
	assert.Contains(t, got, `(say (define (definer "Att" `)
}

func TestGenerateGroupsRulesByPartition(t *testing.T) {
	m := defenceModel(t)
	addFieldRegion(t, m, "Att", 0, -34, 52.5, 34)
	require.NoError(t, m.MarkPartition("Att"))
	require.NoError(t, m.SetPlayerCoefs(10, "Att", geometry.NewCoefs(0.5, 0.25, 10, -3)))
	require.NoError(t, m.SetPlayerCoefs(8, "Att", geometry.NewCoefs(0.5, 0.25, 5, 3)))

	got := NewGenerator(m, DefaultOptions()).Generate()

	att := strings.Index(got, "# Att\n")
	def := strings.Index(got, "# Def\n")
	r9 := strings.Index(got, "RULE_Att09 ")
	r11 := strings.Index(got, "RULE_Att11 ")
	require.True(t, att >= 0 && def >= 0 && r9 >= 0 && r11 >= 0)
	assert.Less(t, att, r9)
	assert.Less(t, r9, r11)
	assert.Less(t, r11, def)
	assert.Contains(t, got, `(do our {11} (pos (((pt ball) * (pt  0.5  0.25)) + (pt  10.0  -3.0)) )) ))))`)
}

func TestPositioningRuleOptions(t *testing.T) {
	const action = `(do our {1} (pos (((pt ball) * (pt  1.0  1.0)) + (pt  0.0  0.0)) )) ))))`

	tests := []struct {
		name   string
		modify func(*Options)
		want   string
	}{
		{
			name:   "plain",
			modify: func(*Options) {},
			want:   defRule,
		},
		{
			name:   "play on",
			modify: func(o *Options) { o.AddPlayOn = true },
			want:   `(say (define (definerule RULE_Def01 direc ((and (playm play_on)(bpos "Def")) ` + action,
		},
		{
			name:   "freedom radius",
			modify: func(o *Options) { o.FreedomRadius = 2.5 },
			want:   `(say (define (definerule RULE_Def01 direc ((and (bpos "Def")(not (bpos (arc (pt our 1) 0 2.5 0 360 )))) ` + action,
		},
		{
			name:   "custom condition",
			modify: func(o *Options) { o.CustomCondition = "(bowner our {1})" },
			want:   `(say (define (definerule RULE_Def01 direc ((and (bpos "Def")(bowner our {1})) ` + action,
		},
		{
			name: "everything",
			modify: func(o *Options) {
				o.AddPlayOn = true
				o.FreedomRadius = 3
				o.CustomCondition = "(true)"
			},
			want: `(say (define (definerule RULE_Def01 direc ((and (playm play_on)(bpos "Def")(not (bpos (arc (pt our 1) 0 3.0 0 360 )))(true)) ` + action,
		},
		{
			name:   "positioning radius",
			modify: func(o *Options) { o.PositioningRadius = 3 },
			want:   `(say (define (definerule RULE_Def01 direc ((bpos "Def")(do our {1} (pos (arc (((pt ball) * (pt  1.0  1.0)) + (pt  0.0  0.0)) 0 3.0 0 360 ))) ))))`,
		},
		{
			name:   "prefix",
			modify: func(o *Options) { o.RulePrefix = "T1_" },
			want:   `(say (define (definerule RULE_T1_Def01 direc ((bpos "Def")` + action,
		},
		{
			name:   "zero radius is off",
			modify: func(o *Options) { o.FreedomRadius = 0; o.PositioningRadius = 0 },
			want:   defRule,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.modify(&opts)
			got := NewGenerator(defenceModel(t), opts).Generate()
			assert.Contains(t, got, tt.want+"\n")
		})
	}
}

func TestRuleName(t *testing.T) {
	assert.Equal(t, "RULE_Def01", RuleName("", "Def", 0))
	assert.Equal(t, "RULE_Def09", RuleName("", "Def", 8))
	assert.Equal(t, "RULE_Def10", RuleName("", "Def", 9))
	assert.Equal(t, "RULE_xDef11", RuleName("x", "Def", 10))
}

func midfieldModel(t *testing.T) *strategy.Model {
	t.Helper()
	m := strategy.NewModel()
	addFieldRegion(t, m, "Mid", -20, -20, 20, 20)
	require.NoError(t, m.MarkPartition("Mid"))
	return m
}

func TestHomePositionsRemap(t *testing.T) {
	m := midfieldModel(t)
	require.NoError(t, m.SetPlayerCoefs(1, "Mid", geometry.NewCoefs(0.5, 0.5, -10, 5)))
	require.NoError(t, m.SetPlayerCoefs(2, "Mid", geometry.NewCoefs(0.5, 0.5, 10, -5)))

	homes, part, ok := HomePositions(m)
	require.True(t, ok)
	assert.Equal(t, "Mid", part)
	require.Len(t, homes, 2)

	assert.Equal(t, 1, homes[0].Player)
	assert.InDelta(t, HomeBackX, homes[0].Pos.X, 1e-9)
	assert.InDelta(t, 5, homes[0].Pos.Y, 1e-9)
	assert.Equal(t, 2, homes[1].Player)
	assert.InDelta(t, HomeFrontX, homes[1].Pos.X, 1e-9)
	assert.InDelta(t, -5, homes[1].Pos.Y, 1e-9)

	got := NewGenerator(m, DefaultOptions()).Generate()
	assert.Contains(t, got, "# Home Positionings\n"+
		"(say (define (definerule RULE_HOMES direc ((true) (do our {2} (home (pt -30.0 5.0))) (do our {3} (home (pt -5.0 -5.0)))  ) ) ) )\n\n")
}

func TestHomePositionsKeepRelativeSpacing(t *testing.T) {
	m := midfieldModel(t)
	require.NoError(t, m.SetPlayerCoefs(3, "Mid", geometry.NewCoefs(0, 0, -20, 0)))
	require.NoError(t, m.SetPlayerCoefs(5, "Mid", geometry.NewCoefs(0, 0, -10, 0)))
	require.NoError(t, m.SetPlayerCoefs(7, "Mid", geometry.NewCoefs(0, 0, 20, 0)))

	homes, _, ok := HomePositions(m)
	require.True(t, ok)
	require.Len(t, homes, 3)
	assert.InDelta(t, -30, homes[0].Pos.X, 1e-9)
	assert.InDelta(t, -23.75, homes[1].Pos.X, 1e-9)
	assert.InDelta(t, -5, homes[2].Pos.X, 1e-9)
}

func TestHomePositionsSkipGoalkeeper(t *testing.T) {
	m := midfieldModel(t)
	require.NoError(t, m.SetPlayerCoefs(0, "Mid", geometry.NewCoefs(0, 0, -50, 0)))

	_, _, ok := HomePositions(m)
	assert.False(t, ok)
	assert.NotContains(t, NewGenerator(m, DefaultOptions()).Generate(), "RULE_HOMES")
}

func TestHomePositionsEqualX(t *testing.T) {
	m := midfieldModel(t)
	require.NoError(t, m.SetPlayerCoefs(4, "Mid", geometry.NewCoefs(0, 0, 3, 1)))
	require.NoError(t, m.SetPlayerCoefs(6, "Mid", geometry.NewCoefs(0, 0, 3, -1)))

	homes, _, ok := HomePositions(m)
	require.True(t, ok)
	for _, h := range homes {
		assert.False(t, math.IsNaN(h.Pos.X))
		assert.InDelta(t, HomeFrontX, h.Pos.X, 1e-9)
	}
}

func TestHomePositionsNeedCenterPartition(t *testing.T) {
	m := strategy.NewModel()
	addFieldRegion(t, m, "Att", 10, -34, 52.5, 34)
	require.NoError(t, m.MarkPartition("Att"))
	require.NoError(t, m.SetPlayerCoefs(4, "Att", geometry.NewCoefs(0, 0, 3, 1)))

	_, _, ok := HomePositions(m)
	assert.False(t, ok)

	got := NewGenerator(m, DefaultOptions()).Generate()
	assert.NotContains(t, got, "RULE_HOMES")
	assert.Contains(t, got, "RULE_Att05")
}

func TestGenerateDeterministic(t *testing.T) {
	build := func() *strategy.Model {
		m := midfieldModel(t)
		for _, name := range []string{"Zeta", "Alpha", "Kappa", "Beta"} {
			addFieldRegion(t, m, name, -52.5, -34, 52.5, 34)
			require.NoError(t, m.MarkPartition(name))
			for p := 0; p < strategy.NumPlayers; p++ {
				require.NoError(t, m.SetPlayerCoefs(p, name, geometry.NewCoefs(0.1*float64(p), 0.2, float64(p), -1)))
			}
		}
		return m
	}
	opts := DefaultOptions()
	opts.AddPlayOn = true

	first := NewGenerator(build(), opts).Generate()
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, NewGenerator(build(), opts).Generate())
	}
	assert.Less(t, strings.Index(first, "# Alpha\n"), strings.Index(first, "# Beta\n"))
	assert.Less(t, strings.Index(first, "# Kappa\n"), strings.Index(first, "# Zeta\n"))
}

func TestWriteToMatchesGenerate(t *testing.T) {
	g := NewGenerator(defenceModel(t), DefaultOptions())
	var buf bytes.Buffer

	n, err := g.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
	assert.Equal(t, g.Generate(), buf.String())
}

func TestOptionsValidate(t *testing.T) {
	assert.NoError(t, DefaultOptions().Validate())

	tests := []struct {
		name   string
		modify func(*Options)
	}{
		{"nan freedom radius", func(o *Options) { o.FreedomRadius = math.NaN() }},
		{"infinite positioning radius", func(o *Options) { o.PositioningRadius = math.Inf(1) }},
		{"huge radius", func(o *Options) { o.FreedomRadius = 1000 }},
		{"prefix with space", func(o *Options) { o.RulePrefix = "a b" }},
		{"prefix with paren", func(o *Options) { o.RulePrefix = "a(" }},
		{"long prefix", func(o *Options) { o.RulePrefix = strings.Repeat("p", 65) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.modify(&opts)
			assert.Error(t, opts.Validate())
		})
	}
}

package plan

import (
	"testing"

	"github.com/mfaivrep/planif/core/model"
)

func TestParseRequirements(t *testing.T) {
	reqs, bad := ParseRequirements("115:Senior,2673:3(2-4)")
	if len(bad) != 0 {
		t.Fatalf("unexpected bad fragments: %v", bad)
	}
	if len(reqs) != 2 {
		t.Fatalf("expected 2 requirements, got %d", len(reqs))
	}
	if reqs[0].ParamID != "115" || reqs[0].Value != "Senior" {
		t.Errorf("bad role requirement: %+v", reqs[0])
	}
	r := reqs[1]
	if r.ParamID != "2673" || r.Value != "3" || !r.HasMin || r.Min != 2 || !r.HasMax || r.Max != 4 {
		t.Errorf("bad range requirement: %+v", r)
	}
}

func TestParseRequirementsOpenBounds(t *testing.T) {
	reqs, _ := ParseRequirements("2673:3(2-)")
	if !reqs[0].HasMin || reqs[0].HasMax {
		t.Errorf("expected lower bound only: %+v", reqs[0])
	}
	reqs, _ = ParseRequirements("2673:3(-4)")
	if reqs[0].HasMin || !reqs[0].HasMax {
		t.Errorf("expected upper bound only: %+v", reqs[0])
	}
}

func TestParseRequirementsSkipsMalformed(t *testing.T) {
	reqs, bad := ParseRequirements("115:Senior,garbage,2673:3(2-x),2673:2")
	if len(reqs) != 2 {
		t.Fatalf("expected 2 valid requirements, got %d", len(reqs))
	}
	if len(bad) != 2 {
		t.Fatalf("expected 2 malformed fragments, got %v", bad)
	}
}

func TestParseRequirementsEmpty(t *testing.T) {
	reqs, bad := ParseRequirements("")
	if len(reqs) != 0 || len(bad) != 0 {
		t.Fatal("empty string parses to nothing")
	}
}

func TestMatchesRoleAndLevel(t *testing.T) {
	reqs, _ := ParseRequirements("115:Senior,2673:3(2-4)")

	ok := &model.ResourceProfile{ID: "r1", Role: "Senior", Level: 3}
	if !Matches(ok, reqs) {
		t.Error("Senior level 3 must match")
	}
	tooHigh := &model.ResourceProfile{ID: "r2", Role: "Senior", Level: 5}
	if Matches(tooHigh, reqs) {
		t.Error("level 5 must fail the 2-4 range")
	}
	wrongRole := &model.ResourceProfile{ID: "r3", Role: "Junior", Level: 3}
	if Matches(wrongRole, reqs) {
		t.Error("role mismatch must reject")
	}
}

func TestMatchesRolelessResourcePassesRole(t *testing.T) {
	reqs, _ := ParseRequirements("115:Senior")
	noRole := &model.ResourceProfile{ID: "r1", Level: 1}
	if !Matches(noRole, reqs) {
		t.Error("resource without a role satisfies role requirements")
	}
}

func TestMatchesWildcard(t *testing.T) {
	reqs, _ := ParseRequirements("115:%")
	r := &model.ResourceProfile{ID: "r1", Role: "Junior"}
	if !Matches(r, reqs) {
		t.Error("wildcard requirement always passes")
	}
}

func TestMatchesLevelExactWithoutRange(t *testing.T) {
	reqs, _ := ParseRequirements("2673:3")
	if !Matches(&model.ResourceProfile{ID: "a", Level: 3}, reqs) {
		t.Error("exact level must match")
	}
	if Matches(&model.ResourceProfile{ID: "b", Level: 2}, reqs) {
		t.Error("different level must fail")
	}
}

func TestMatchesUnknownParamPasses(t *testing.T) {
	reqs, _ := ParseRequirements("9999:whatever")
	if !Matches(&model.ResourceProfile{ID: "a"}, reqs) {
		t.Error("unknown parameter ids are accepted")
	}
}

func TestMatchesEmptyRequirements(t *testing.T) {
	if !Matches(&model.ResourceProfile{ID: "a"}, nil) {
		t.Error("empty requirement list always matches")
	}
}

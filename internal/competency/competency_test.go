package competency_test

import (
	"encoding/json"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/talenthub/talent-hub/internal/competency"
)

func TestCompetency(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Competency Suite")
}

var _ = Describe("Set", func() {
	Describe("NewSet", func() {
		It("should collapse duplicates keeping the first occurrence", func() {
			s := competency.NewSet("go", "sql", "go", "docker", "sql")
			Expect([]string(s)).To(Equal([]string{"go", "sql", "docker"}))
		})

		It("should build an empty set from no tags", func() {
			Expect(competency.NewSet()).To(BeEmpty())
		})
	})

	Describe("Contains", func() {
		It("should match exact strings only", func() {
			s := competency.NewSet("go", "sql")
			Expect(s.Contains("go")).To(BeTrue())
			Expect(s.Contains("Go")).To(BeFalse())
			Expect(s.Contains("python")).To(BeFalse())
		})
	})

	Describe("Union", func() {
		It("should append new tags after the existing ones", func() {
			a := competency.NewSet("go", "sql")
			b := competency.NewSet("sql", "docker")
			Expect([]string(a.Union(b))).To(Equal([]string{"go", "sql", "docker"}))
		})

		It("should not mutate the receiver", func() {
			a := competency.NewSet("go")
			_ = a.Union(competency.NewSet("sql"))
			Expect([]string(a)).To(Equal([]string{"go"}))
		})
	})

	Describe("Scan", func() {
		It("should load a stored JSON array", func() {
			var s competency.Set
			Expect(s.Scan(`["go","sql"]`)).To(Succeed())
			Expect([]string(s)).To(Equal([]string{"go", "sql"}))
		})

		It("should load NULL as the empty set", func() {
			var s competency.Set
			Expect(s.Scan(nil)).To(Succeed())
			Expect(s).To(BeEmpty())
		})

		It("should load malformed text as the empty set", func() {
			var s competency.Set
			Expect(s.Scan("not json at all")).To(Succeed())
			Expect(s).To(BeEmpty())
		})

		It("should dedupe tags stored with duplicates", func() {
			var s competency.Set
			Expect(s.Scan([]byte(`["go","go","sql"]`))).To(Succeed())
			Expect([]string(s)).To(Equal([]string{"go", "sql"}))
		})
	})

	Describe("Value", func() {
		It("should serialize a nil set as an empty JSON array", func() {
			var s competency.Set
			v, err := s.Value()
			Expect(err).NotTo(HaveOccurred())
			Expect(v).To(Equal(`[]`))
		})

		It("should round trip through storage form", func() {
			orig := competency.NewSet("go", "sql")
			v, err := orig.Value()
			Expect(err).NotTo(HaveOccurred())

			var loaded competency.Set
			Expect(loaded.Scan(v)).To(Succeed())
			Expect(loaded).To(Equal(orig))
		})
	})

	Describe("JSON encoding", func() {
		It("should marshal as a plain array", func() {
			b, err := json.Marshal(competency.NewSet("go"))
			Expect(err).NotTo(HaveOccurred())
			Expect(string(b)).To(Equal(`["go"]`))
		})
	})
})

var _ = Describe("Matcher", func() {
	Describe("Missing", func() {
		It("should preserve the required order", func() {
			have := competency.NewSet("sql")
			missing := competency.Missing([]string{"go", "sql", "docker"}, have)
			Expect(missing).To(Equal([]string{"go", "docker"}))
		})

		It("should return empty for an empty requirement", func() {
			Expect(competency.Missing(nil, competency.NewSet("go"))).To(BeEmpty())
		})
	})

	Describe("Eligible", func() {
		It("should be satisfied by a superset", func() {
			have := competency.NewSet("go", "sql", "docker")
			Expect(competency.Eligible([]string{"go", "sql"}, have)).To(BeTrue())
		})

		It("should always pass an empty requirement", func() {
			Expect(competency.Eligible(nil, nil)).To(BeTrue())
		})

		It("should fail when any tag is missing", func() {
			Expect(competency.Eligible([]string{"go"}, competency.NewSet("sql"))).To(BeFalse())
		})
	})

	Describe("MatchPosition", func() {
		requirements := map[string][]string{
			"Backend Developer": {"go", "sql"},
			"Designer":          {},
		}

		It("should report no open position when the position is not a key", func() {
			_, err := competency.MatchPosition(requirements, "Frontend Developer", competency.NewSet("go"))
			Expect(err).To(MatchError(competency.ErrNoOpenPosition))
		})

		It("should return the missing tags for the candidate's position", func() {
			missing, err := competency.MatchPosition(requirements, "Backend Developer", competency.NewSet("go"))
			Expect(err).NotTo(HaveOccurred())
			Expect(missing).To(Equal([]string{"sql"}))
		})

		It("should treat a position with no requirements as open to anyone", func() {
			missing, err := competency.MatchPosition(requirements, "Designer", nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(missing).To(BeEmpty())
		})
	})
})

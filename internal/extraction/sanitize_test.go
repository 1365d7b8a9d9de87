package extraction

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("SanitizeField", func() {
	var (
		input  string
		result string
	)

	JustBeforeEach(func() {
		result = SanitizeField(input)
	})

	When("the value is wrapped in bold markers", func() {
		BeforeEach(func() {
			input = "**6E6252**"
		})

		It("strips the markers", func() {
			Expect(result).To(Equal("6E6252"))
		})
	})

	When("markup appears in the middle of the value", func() {
		BeforeEach(func() {
			input = "Indi**Go** Air_lines_"
		})

		It("strips every occurrence", func() {
			Expect(result).To(Equal("IndiGo Airlines"))
		})
	})

	When("the value is the null marker", func() {
		BeforeEach(func() {
			input = "null"
		})

		It("returns an absent value", func() {
			Expect(result).To(BeEmpty())
		})
	})

	When("the value is the uppercase null marker", func() {
		BeforeEach(func() {
			input = "NULL"
		})

		It("returns an absent value", func() {
			Expect(result).To(BeEmpty())
		})
	})

	When("the value is a mixed-case null spelling", func() {
		BeforeEach(func() {
			input = "Null"
		})

		It("keeps it, since removal is case-sensitive", func() {
			Expect(result).To(Equal("Null"))
		})
	})

	When("the value is only whitespace", func() {
		BeforeEach(func() {
			input = "   "
		})

		It("returns an absent value", func() {
			Expect(result).To(BeEmpty())
		})
	})

	When("the value is a marked-up null", func() {
		BeforeEach(func() {
			input = " **null** "
		})

		It("returns an absent value", func() {
			Expect(result).To(BeEmpty())
		})
	})

	When("the value contains code markers and surrounding space", func() {
		BeforeEach(func() {
			input = "  `24D`  "
		})

		It("strips the markers and trims", func() {
			Expect(result).To(Equal("24D"))
		})
	})
})

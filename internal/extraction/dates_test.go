package extraction

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ParseFlightDate", func() {
	var (
		input  string
		result time.Time
	)

	JustBeforeEach(func() {
		result = ParseFlightDate(input)
	})

	expected := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)

	When("the date uses the day month-name year format", func() {
		BeforeEach(func() {
			input = "15 Jan 2025"
		})

		It("parses the calendar date", func() {
			Expect(result).To(Equal(expected))
		})
	})

	When("the date uses the ISO format", func() {
		BeforeEach(func() {
			input = "2025-01-15"
		})

		It("parses the calendar date", func() {
			Expect(result).To(Equal(expected))
		})
	})

	When("the date uses the slash format", func() {
		BeforeEach(func() {
			input = "01/15/2025"
		})

		It("parses the calendar date", func() {
			Expect(result).To(Equal(expected))
		})
	})

	When("the string is not a date", func() {
		BeforeEach(func() {
			input = "not a date"
		})

		It("returns the zero time", func() {
			Expect(result.IsZero()).To(BeTrue())
		})
	})

	When("the string is empty", func() {
		BeforeEach(func() {
			input = ""
		})

		It("returns the zero time", func() {
			Expect(result.IsZero()).To(BeTrue())
		})
	})
})

package extraction

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// mockDirectory is a mock implementation of AirlineDirectory that
// counts its calls.
type mockDirectory struct {
	name      string
	lookupErr error
	calls     int
}

func (m *mockDirectory) Lookup(_ context.Context, flightNumber string) (string, error) {
	m.calls++
	if m.lookupErr != nil {
		return "", m.lookupErr
	}
	return m.name, nil
}

var _ = Describe("IsValidAirline", func() {
	DescribeTable("judging extracted airline names",
		func(name string, valid bool) {
			Expect(IsValidAirline(name)).To(Equal(valid))
		},
		Entry("a real carrier name", "IndiGo", true),
		Entry("an empty name", "", false),
		Entry("a whitespace name", "   ", false),
		Entry("the junk literal the model emits", "XSAT", false),
		Entry("a two-letter designator", "AI", false),
		Entry("the word FLIGHT", "FLIGHT", false),
		Entry("a null placeholder", "null", false),
		Entry("an unknown placeholder", "Unknown Carrier", false),
		Entry("a name without letters", "6252", false),
		Entry("a name with mixed case denylist token", "N/A", false),
		Entry("a carrier with a short word inside", "Emirates", true),
	)
})

var _ = Describe("Resolver", func() {
	var (
		directory    *mockDirectory
		resolver     *Resolver
		airline      string
		flightNumber string
		result       string
	)

	BeforeEach(func() {
		directory = &mockDirectory{}
	})

	JustBeforeEach(func() {
		resolver = NewResolver(directory)
		result = resolver.Resolve(context.Background(), airline, flightNumber)
	})

	When("the extracted airline is already valid", func() {
		BeforeEach(func() {
			airline = "IndiGo"
			flightNumber = "6E6252"
		})

		It("returns it unchanged", func() {
			Expect(result).To(Equal("IndiGo"))
		})

		It("never consults the directory", func() {
			Expect(directory.calls).To(BeZero())
		})
	})

	When("the airline is absent and the directory knows the flight", func() {
		BeforeEach(func() {
			airline = ""
			flightNumber = "6E6252"
			directory.name = "IndiGo"
		})

		It("returns the looked-up carrier", func() {
			Expect(result).To(Equal("IndiGo"))
		})

		It("consults the directory once", func() {
			Expect(directory.calls).To(Equal(1))
		})
	})

	When("the airline is absent and the directory has no answer", func() {
		BeforeEach(func() {
			airline = ""
			flightNumber = "6E6252"
			directory.name = ""
		})

		It("keeps the absent value", func() {
			Expect(result).To(BeEmpty())
		})
	})

	When("the lookup fails", func() {
		BeforeEach(func() {
			airline = "XSAT"
			flightNumber = "6E6252"
			directory.lookupErr = errors.New("lookup unavailable")
		})

		It("keeps the original value", func() {
			Expect(result).To(Equal("XSAT"))
		})
	})

	When("there is no flight number to look up", func() {
		BeforeEach(func() {
			airline = "XSAT"
			flightNumber = ""
		})

		It("keeps the original value", func() {
			Expect(result).To(Equal("XSAT"))
		})

		It("never consults the directory", func() {
			Expect(directory.calls).To(BeZero())
		})
	})

	When("resolving an already-resolved value again", func() {
		BeforeEach(func() {
			airline = ""
			flightNumber = "6E6252"
			directory.name = "IndiGo"
		})

		It("is idempotent", func() {
			again := resolver.Resolve(context.Background(), result, flightNumber)
			Expect(again).To(Equal(result))
			Expect(directory.calls).To(Equal(1))
		})
	})
})

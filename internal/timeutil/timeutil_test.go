package timeutil_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/staffgrid/backend/internal"
	"github.com/staffgrid/backend/internal/timeutil"
)

func TestTimeutil(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Timeutil Suite")
}

var _ = Describe("ToMinutes", func() {
	It("converts clock times to minutes since midnight", func() {
		Expect(timeutil.ToMinutes("00:00")).To(Equal(0))
		Expect(timeutil.ToMinutes("09:30")).To(Equal(570))
		Expect(timeutil.ToMinutes("23:59")).To(Equal(1439))
	})

	It("accepts single-digit components", func() {
		Expect(timeutil.ToMinutes("9:5")).To(Equal(545))
	})

	DescribeTable("rejects malformed input",
		func(input string) {
			_, err := timeutil.ToMinutes(input)
			Expect(err).To(HaveOccurred())
			Expect(internal.IsCode(err, internal.ErrCodeMalformedTime)).To(BeTrue())
		},
		Entry("empty string", ""),
		Entry("missing colon", "0930"),
		Entry("too many segments", "09:30:00"),
		Entry("non-numeric hour", "ab:30"),
		Entry("non-numeric minute", "09:cd"),
		Entry("hour out of range", "24:00"),
		Entry("minute out of range", "12:60"),
		Entry("negative hour", "-1:00"),
	)
})

var _ = Describe("RangesOverlap", func() {
	It("detects overlapping intervals", func() {
		Expect(timeutil.RangesOverlap(540, 780, 720, 960)).To(BeTrue())
		Expect(timeutil.RangesOverlap(720, 960, 540, 780)).To(BeTrue())
	})

	It("treats touching endpoints as disjoint", func() {
		// a shift ending 13:00 does not conflict with one starting 13:00
		Expect(timeutil.RangesOverlap(540, 780, 780, 1020)).To(BeFalse())
		Expect(timeutil.RangesOverlap(780, 1020, 540, 780)).To(BeFalse())
	})

	It("detects full containment", func() {
		Expect(timeutil.RangesOverlap(600, 1080, 660, 1020)).To(BeTrue())
	})
})

var _ = Describe("WeekdayOf", func() {
	It("maps dates to 0=Sunday..6=Saturday", func() {
		Expect(timeutil.WeekdayOf("2025-10-05")).To(Equal(0)) // Sunday
		Expect(timeutil.WeekdayOf("2025-10-06")).To(Equal(1)) // Monday
		Expect(timeutil.WeekdayOf("2025-10-11")).To(Equal(6)) // Saturday
	})

	It("rejects malformed dates", func() {
		_, err := timeutil.WeekdayOf("06-10-2025")
		Expect(internal.IsCode(err, internal.ErrCodeMalformedDate)).To(BeTrue())
	})
})

var _ = Describe("WithinDates", func() {
	day := func(s string) time.Time {
		d, err := timeutil.ParseDate(s)
		Expect(err).NotTo(HaveOccurred())
		return d
	}

	It("is inclusive on both ends", func() {
		start := day("2025-10-05")
		end := day("2025-10-07")

		Expect(timeutil.WithinDates(day("2025-10-05"), start, end)).To(BeTrue())
		Expect(timeutil.WithinDates(day("2025-10-06"), start, end)).To(BeTrue())
		Expect(timeutil.WithinDates(day("2025-10-07"), start, end)).To(BeTrue())
		Expect(timeutil.WithinDates(day("2025-10-04"), start, end)).To(BeFalse())
		Expect(timeutil.WithinDates(day("2025-10-08"), start, end)).To(BeFalse())
	})

	It("covers single-day ranges", func() {
		d := day("2025-10-05")
		Expect(timeutil.WithinDates(d, d, d)).To(BeTrue())
	})

	It("ignores the time-of-day portion of store values", func() {
		noon := time.Date(2025, 10, 6, 12, 0, 0, 0, time.UTC)
		Expect(timeutil.WithinDates(noon, day("2025-10-05"), day("2025-10-07"))).To(BeTrue())
		Expect(timeutil.SameDay(noon, day("2025-10-06"))).To(BeTrue())
	})
})

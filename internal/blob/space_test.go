package blob

import (
	"errors"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Space", func() {
	var (
		space *Space
		bg    Color
	)

	BeforeEach(func() {
		bg = Gray(30)
		var err error
		space, err = NewSpace(10, bg)
		Expect(err).NotTo(HaveOccurred())
	})

	It("rejects a negative width", func() {
		_, err := NewSpace(-1, bg)
		Expect(errors.Is(err, ErrNegativeWidth)).To(BeTrue())
	})

	Describe("Render", func() {
		It("fills an empty space with the background", func() {
			row := space.Render()
			Expect(row).To(HaveLen(10))
			for _, c := range row {
				Expect(c).To(Equal(bg))
			}
		})

		It("renders a zero-width space as an empty row", func() {
			empty, err := NewSpace(0, bg)
			Expect(err).NotTo(HaveOccurred())
			Expect(empty.Render()).To(BeEmpty())
		})

		It("places a blob's profile from its position", func() {
			space.Add(New(3, 0, []Color{{1, 0, 0}, {2, 0, 0}, {3, 0, 0}}, 0, 0))
			row := space.Render()

			Expect(row[2]).To(Equal(bg))
			Expect(row[3]).To(Equal(Color{1, 0, 0}))
			Expect(row[4]).To(Equal(Color{2, 0, 0}))
			Expect(row[5]).To(Equal(Color{3, 0, 0}))
			Expect(row[6]).To(Equal(bg))
		})

		It("lets the earliest added blob win where blobs overlap", func() {
			a := New(2, 0, []Color{{10, 10, 10}, {11, 11, 11}, {12, 12, 12}}, 0, 0)
			b := New(3, 0, []Color{{200, 0, 0}, {201, 0, 0}, {202, 0, 0}}, 0, 0)
			space.Add(a)
			space.Add(b)
			row := space.Render()

			Expect(row[3]).To(Equal(Color{11, 11, 11}))
			Expect(row[4]).To(Equal(Color{12, 12, 12}))
			Expect(row[5]).To(Equal(Color{202, 0, 0}))
		})

		It("shifts fractional positions by whole pixels", func() {
			space.Add(New(1.5, 0, []Color{{1, 1, 1}, {2, 2, 2}}, 0, 0))
			row := space.Render()

			Expect(row[1]).To(Equal(bg))
			Expect(row[2]).To(Equal(Color{1, 1, 1}))
			Expect(row[3]).To(Equal(Color{2, 2, 2}))
			Expect(row[4]).To(Equal(bg))
		})

		It("clips blobs that hang off either edge", func() {
			space.Add(New(-2, 0, []Color{{1, 0, 0}, {2, 0, 0}, {3, 0, 0}}, 0, 0))
			space.Add(New(9, 0, []Color{{7, 0, 0}, {8, 0, 0}}, 0, 0))
			row := space.Render()

			Expect(row[0]).To(Equal(Color{3, 0, 0}))
			Expect(row[1]).To(Equal(bg))
			Expect(row[9]).To(Equal(Color{7, 0, 0}))
		})

		It("returns a row that does not alias space state", func() {
			space.Add(New(0, 0, []Color{{5, 5, 5}}, 0, 0))
			first := space.Render()
			first[0] = Color{255, 255, 255}

			Expect(space.Render()[0]).To(Equal(Color{5, 5, 5}))
		})
	})

	Describe("Add and Remove", func() {
		It("keeps duplicates and insertion order", func() {
			b := New(0, 0, []Color{{1, 1, 1}}, 0, 0)
			space.Add(b)
			space.Add(b)
			Expect(space.Len()).To(Equal(2))
		})

		It("removes the first occurrence only", func() {
			a := New(0, 0, []Color{{1, 1, 1}}, 0, 0)
			b := New(0, 0, []Color{{2, 2, 2}}, 0, 0)
			space.Add(a)
			space.Add(b)
			space.Add(a)

			Expect(space.Remove(a)).To(BeTrue())
			Expect(space.Blobs()).To(Equal([]*Blob{b, a}))
			Expect(space.Render()[0]).To(Equal(Color{2, 2, 2}))
		})

		It("reports a missing blob", func() {
			Expect(space.Remove(New(0, 0, nil, 0, 0))).To(BeFalse())
		})
	})

	Describe("TimeStep", func() {
		It("moves every blob once", func() {
			a := New(0, 1, []Color{{1, 1, 1}}, 0, 0)
			b := New(5, -2, []Color{{1, 1, 1}}, 0, 0)
			space.Add(a)
			space.Add(b)

			space.TimeStep(rand.New(rand.NewSource(1)))

			Expect(a.Position).To(BeNumerically("==", 1))
			Expect(b.Position).To(BeNumerically("==", 3))
		})
	})
})

package common_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/magichome-go/magichome/common"
)

var _ = Describe("ColorState", func() {
	It("clamps out of range channel values, never wrapping", func() {
		color := common.NewColorState(-5, 300, 128, 256)
		Expect(color).To(Equal(common.ColorState{R: 0, G: 255, B: 128, W: 255}))
	})

	It("returns its channels in wire order", func() {
		color := common.NewColorState(1, 2, 3, 4)
		Expect(color.Bytes()).To(Equal([]byte{1, 2, 3, 4}))
	})

	Describe("ChangeBrightness", func() {
		It("returns the color unchanged for a zero delta", func() {
			color := common.ColorState{R: 254, G: 166, B: 87, W: 12}
			Expect(color.ChangeBrightness(0, false)).To(Equal(color))
			Expect(color.ChangeBrightness(0, true)).To(Equal(color))
		})

		It("adds the delta to the luminance", func() {
			// Greys carry zero saturation, so the luminance shift maps
			// straight back onto the channels
			color := common.ColorState{R: 100, G: 100, B: 100, W: 7}
			Expect(color.ChangeBrightness(50, false)).To(Equal(common.ColorState{R: 150, G: 150, B: 150, W: 7}))
		})

		It("multiplies the luminance in percentage mode", func() {
			color := common.ColorState{R: 100, G: 100, B: 100}
			Expect(color.ChangeBrightness(2, true)).To(Equal(common.ColorState{R: 200, G: 200, B: 200}))
		})

		It("clamps the luminance at 255 for large positive deltas", func() {
			color := common.ColorState{R: 10, G: 20, B: 30, W: 5}
			Expect(color.ChangeBrightness(1000, false)).To(Equal(common.ColorState{R: 255, G: 255, B: 255, W: 5}))
		})

		It("clamps the luminance at 0 for large negative deltas", func() {
			color := common.ColorState{R: 200, G: 100, B: 50, W: 5}
			Expect(color.ChangeBrightness(-1000, false)).To(Equal(common.ColorState{R: 0, G: 0, B: 0, W: 5}))
		})

		It("never touches the white channel", func() {
			color := common.ColorState{R: 80, G: 90, B: 100, W: 42}
			Expect(color.ChangeBrightness(30, false).W).To(Equal(uint8(42)))
			Expect(color.ChangeBrightness(-30, false).W).To(Equal(uint8(42)))
		})
	})
})

var _ = Describe("State", func() {
	It("reports On only for a known powered on state", func() {
		Expect(common.State{Power: common.PowerOn}.On()).To(BeTrue())
		Expect(common.State{Power: common.PowerOff}.On()).To(BeFalse())
		Expect(common.State{Power: common.PowerUnknown}.On()).To(BeFalse())
	})

	It("renders power states", func() {
		Expect(common.PowerOn.String()).To(Equal(`on`))
		Expect(common.PowerOff.String()).To(Equal(`off`))
		Expect(common.PowerUnknown.String()).To(Equal(`unknown`))
	})
})

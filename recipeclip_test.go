package recipeclip_test

import (
	"errors"
	"testing"

	"github.com/scsmith60/recipeclip"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := recipeclip.Errorf(recipeclip.ENOTFOUND, "pattern %q not found", "test")

	assert.Equal(t, recipeclip.ENOTFOUND, recipeclip.ErrorCode(err))
	assert.Equal(t, "pattern \"test\" not found", recipeclip.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, recipeclip.ErrorCode(nil))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, recipeclip.EINTERNAL, recipeclip.ErrorCode(errors.New("boom")))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, recipeclip.ErrorMessage(nil))
}

func TestPartialRecipe_Empty(t *testing.T) {
	t.Parallel()

	t.Run("nil is empty", func(t *testing.T) {
		t.Parallel()

		var p *recipeclip.PartialRecipe
		assert.True(t, p.Empty())
	})

	t.Run("title only is not empty", func(t *testing.T) {
		t.Parallel()

		p := &recipeclip.PartialRecipe{Title: "Pad Thai"}
		assert.False(t, p.Empty())
	})
}

func TestSiteCategory_Platform(t *testing.T) {
	t.Parallel()

	assert.True(t, recipeclip.SiteTikTok.Platform())
	assert.True(t, recipeclip.SiteInstagram.Platform())
	assert.True(t, recipeclip.SiteFacebook.Platform())
	assert.False(t, recipeclip.SiteRecipe.Platform())
	assert.False(t, recipeclip.SiteGeneric.Platform())
}

func TestExtractionPattern_SuccessRate(t *testing.T) {
	t.Parallel()

	p := &recipeclip.ExtractionPattern{SuccessCount: 3, TotalCount: 4}
	assert.InDelta(t, 0.75, p.SuccessRate(), 0.0001)

	empty := &recipeclip.ExtractionPattern{}
	assert.Zero(t, empty.SuccessRate())
}

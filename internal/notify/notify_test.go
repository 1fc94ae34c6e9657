package notify

import (
	"testing"
	"time"

	"github.com/h0rv/showcase/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToaster_Lifecycle(t *testing.T) {
	fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tr := NewToaster()
	tr.now = func() time.Time { return fixed }

	tr, cmd := tr.Push("Data fetched successfully!", domain.KindSuccess)
	require.NotNil(t, cmd)
	require.Equal(t, 1, tr.Len())

	toast := tr.Toasts()[0]
	assert.Equal(t, "Data fetched successfully!", toast.Message)
	assert.Equal(t, domain.KindSuccess, toast.Kind)
	assert.Equal(t, fixed, toast.CreatedAt)
	assert.False(t, toast.Leaving)

	// Auto-dismiss starts the exit transition.
	tr, cmd = tr.Update(ExpireMsg{ID: toast.ID})
	require.NotNil(t, cmd)
	assert.True(t, tr.Toasts()[0].Leaving)

	// ... and the transition removes it.
	tr, cmd = tr.Update(RemoveMsg{ID: toast.ID})
	assert.Nil(t, cmd)
	assert.Equal(t, 0, tr.Len())
}

func TestToaster_TimersOnlyTouchTheirToast(t *testing.T) {
	tr := NewToaster()
	tr, _ = tr.Push("first", domain.KindSuccess)
	tr, _ = tr.Push("second", domain.KindError)
	first, second := tr.Toasts()[0], tr.Toasts()[1]

	tr, _ = tr.Update(ExpireMsg{ID: first.ID})
	tr, _ = tr.Update(RemoveMsg{ID: first.ID})

	require.Equal(t, 1, tr.Len())
	assert.Equal(t, second.ID, tr.Toasts()[0].ID)
	assert.False(t, tr.Toasts()[0].Leaving)
}

func TestToaster_ExpireAfterClose(t *testing.T) {
	tr := NewToaster()
	tr, _ = tr.Push("bye", domain.KindError)
	id := tr.Toasts()[0].ID

	tr = tr.Close(id)
	assert.Equal(t, 0, tr.Len())

	tr, cmd := tr.Update(ExpireMsg{ID: id})
	assert.Nil(t, cmd)
	assert.Equal(t, 0, tr.Len())
}

func TestToaster_CloseLatest(t *testing.T) {
	tr := NewToaster()
	tr = tr.CloseLatest()
	assert.Equal(t, 0, tr.Len())

	tr, _ = tr.Push("a", domain.KindSuccess)
	tr, _ = tr.Push("b", domain.KindSuccess)
	tr = tr.CloseLatest()

	require.Equal(t, 1, tr.Len())
	assert.Equal(t, "a", tr.Toasts()[0].Message)
}

func TestToaster_ValueSemantics(t *testing.T) {
	base := NewToaster()
	base, _ = base.Push("kept", domain.KindSuccess)

	derived, _ := base.Push("extra", domain.KindSuccess)
	assert.Equal(t, 1, base.Len())
	assert.Equal(t, 2, derived.Len())
}

func TestToaster_View(t *testing.T) {
	tr := NewToaster()
	assert.Empty(t, tr.View(80))

	tr, _ = tr.Push("Failed to load post details", domain.KindError)
	view := tr.View(80)
	assert.Contains(t, view, "Failed to load post details")
	assert.Contains(t, view, "❌")
}

func TestBanner_Lifecycle(t *testing.T) {
	var b Banner
	assert.False(t, b.Visible())
	assert.Empty(t, b.View(60))

	b, cmd := b.Show("Please correct the errors below.", domain.KindError)
	require.NotNil(t, cmd)
	assert.True(t, b.Visible())
	assert.Equal(t, domain.KindError, b.Kind())
	assert.Contains(t, b.View(60), "Please correct the errors below.")

	b, cmd = b.Update(BannerExpireMsg{Gen: 1})
	require.NotNil(t, cmd)
	assert.True(t, b.Fading())
	assert.True(t, b.Visible())

	b, cmd = b.Update(BannerRemoveMsg{Gen: 1})
	assert.Nil(t, cmd)
	assert.False(t, b.Visible())
	assert.Empty(t, b.Message())
}

func TestBanner_ReplacedBannerIgnoresStaleTimers(t *testing.T) {
	var b Banner
	b, _ = b.Show("first", domain.KindError)
	b, _ = b.Show("second", domain.KindSuccess)

	b, cmd := b.Update(BannerExpireMsg{Gen: 1})
	assert.Nil(t, cmd)
	assert.False(t, b.Fading())
	assert.Equal(t, "second", b.Message())

	b, _ = b.Update(BannerRemoveMsg{Gen: 1})
	assert.True(t, b.Visible())

	b, _ = b.Update(BannerExpireMsg{Gen: 2})
	b, _ = b.Update(BannerRemoveMsg{Gen: 2})
	assert.False(t, b.Visible())
}

func TestBanner_Markup(t *testing.T) {
	var b Banner
	b, _ = b.Show(`
		<h5 class="mb-2">Message Sent Successfully!</h5>
		<p class="mb-0">Thank you for contacting us. We'll get back to you soon!</p>
	`, domain.KindSuccess)

	assert.Contains(t, b.Message(), "Message Sent Successfully!")
	assert.Contains(t, b.Message(), "get back to you soon!")
	assert.NotContains(t, b.Message(), "<")
	assert.NotContains(t, b.Message(), "\n")
}

func TestPlainText(t *testing.T) {
	assert.Equal(t, "", PlainText("   "))
	assert.Equal(t, "plain text", PlainText("plain\n text"))
	assert.Equal(t, "Tom & Jerry", PlainText("Tom &amp; Jerry"))
	assert.Equal(t, "Error! details", PlainText("<h4>Error!</h4><p>details</p>"))
	assert.Equal(t, "", PlainText("<script>alert(1)</script>"))
}

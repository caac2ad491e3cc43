//go:build cgo

package vpxengine

/*
#cgo !windows pkg-config: vpx
#cgo windows CFLAGS: -IC:/vcpkg/installed/x64-windows-static/include
#cgo windows LDFLAGS: -LC:/vcpkg/installed/x64-windows-static/lib -lvpx
#include <vpx/vpx_encoder.h>
#include <vpx/vp8cx.h>
#include <stdlib.h>
#include <string.h>

static vpx_codec_iface_t* vp8_iface(void) {
    return vpx_codec_vp8_cx();
}

static vpx_codec_iface_t* vp9_iface(void) {
    return vpx_codec_vp9_cx();
}

// Wrapper for vpx_codec_enc_init (a macro over the versioned call)
static vpx_codec_err_t init_encoder(vpx_codec_ctx_t *ctx, vpx_codec_iface_t *iface,
                                    vpx_codec_enc_cfg_t *cfg) {
    return vpx_codec_enc_init_ver(ctx, iface, cfg, 0, VPX_ENCODER_ABI_VERSION);
}

// Helper functions to access packet data
static int is_frame_packet(const vpx_codec_cx_pkt_t *pkt) {
    return pkt->kind == VPX_CODEC_CX_FRAME_PKT;
}

static int is_stats_packet(const vpx_codec_cx_pkt_t *pkt) {
    return pkt->kind == VPX_CODEC_STATS_PKT;
}

static void* frame_buf(const vpx_codec_cx_pkt_t *pkt) {
    return pkt->data.frame.buf;
}

static size_t frame_sz(const vpx_codec_cx_pkt_t *pkt) {
    return pkt->data.frame.sz;
}

static vpx_codec_pts_t frame_pts(const vpx_codec_cx_pkt_t *pkt) {
    return pkt->data.frame.pts;
}

static int is_keyframe(const vpx_codec_cx_pkt_t *pkt) {
    return (pkt->data.frame.flags & VPX_FRAME_IS_KEY) != 0;
}

static void* stats_buf(const vpx_codec_cx_pkt_t *pkt) {
    return pkt->data.twopass_stats.buf;
}

static size_t stats_sz(const vpx_codec_cx_pkt_t *pkt) {
    return pkt->data.twopass_stats.sz;
}

// Copies one tightly packed plane into the image, honoring its stride.
static void copy_plane(vpx_image_t *img, int plane, const unsigned char *src,
                       int width, int height) {
    unsigned char *dst = img->planes[plane];
    int stride = img->stride[plane];
    int row;
    for (row = 0; row < height; row++) {
        memcpy(dst + (size_t)row * (size_t)stride, src + (size_t)row * (size_t)width, (size_t)width);
    }
}
*/
import "C"

import (
	"fmt"
	"unsafe"

	"github.com/herbaini/yuvpress/pkg/ports"
)

// Available reports whether libvpx support is compiled in.
func Available() bool {
	return true
}

// Name returns the library's own description of the encoder interface.
func (e *Engine) Name() string {
	return C.GoString(C.vpx_codec_iface_name(e.iface()))
}

func (e *Engine) iface() *C.vpx_codec_iface_t {
	if e.codec == CodecVP9 {
		return C.vp9_iface()
	}
	return C.vp8_iface()
}

// Open allocates a codec context and frame image for cfg. The returned
// handle owns both until Close.
func (e *Engine) Open(cfg ports.EngineConfig) (ports.EngineHandle, error) {
	iface := e.iface()

	ctx := (*C.vpx_codec_ctx_t)(C.malloc(C.sizeof_vpx_codec_ctx_t))
	if ctx == nil {
		return nil, fmt.Errorf("vpxengine: failed to allocate codec context")
	}
	C.memset(unsafe.Pointer(ctx), 0, C.sizeof_vpx_codec_ctx_t)

	enc := (*C.vpx_codec_enc_cfg_t)(C.malloc(C.sizeof_vpx_codec_enc_cfg_t))
	if enc == nil {
		C.free(unsafe.Pointer(ctx))
		return nil, fmt.Errorf("vpxengine: failed to allocate encoder config")
	}

	if res := C.vpx_codec_enc_config_default(iface, enc, 0); res != C.VPX_CODEC_OK {
		C.free(unsafe.Pointer(enc))
		C.free(unsafe.Pointer(ctx))
		return nil, fmt.Errorf("vpxengine: default config: %s", errString(res))
	}

	enc.g_w = C.uint(cfg.Width)
	enc.g_h = C.uint(cfg.Height)
	enc.g_timebase.num = C.int(cfg.TimebaseNum)
	enc.g_timebase.den = C.int(cfg.TimebaseDen)
	enc.rc_target_bitrate = C.uint(cfg.BitrateKbps)
	// No lookahead: packets come back on the call that submits the frame,
	// so the session never needs a flush phase.
	enc.g_lag_in_frames = 0
	enc.g_pass = passValue(cfg.Pass)

	if res := C.init_encoder(ctx, iface, enc); res != C.VPX_CODEC_OK {
		detail := codecDetail(ctx)
		C.free(unsafe.Pointer(enc))
		C.free(unsafe.Pointer(ctx))
		return nil, fmt.Errorf("vpxengine: init: %s", detail)
	}

	img := C.vpx_img_alloc(nil, C.VPX_IMG_FMT_I420, C.uint(cfg.Width), C.uint(cfg.Height), 1)
	if img == nil {
		C.vpx_codec_destroy(ctx)
		C.free(unsafe.Pointer(enc))
		C.free(unsafe.Pointer(ctx))
		return nil, fmt.Errorf("vpxengine: failed to allocate image buffer")
	}

	return &handle{
		ctx:      ctx,
		cfg:      enc,
		img:      img,
		width:    cfg.Width,
		height:   cfg.Height,
		deadline: deadlineValue(cfg.Deadline),
	}, nil
}

type handle struct {
	ctx      *C.vpx_codec_ctx_t
	cfg      *C.vpx_codec_enc_cfg_t
	img      *C.vpx_image_t
	width    int
	height   int
	deadline C.ulong
	closed   bool
}

// Submit encodes one I420 frame and drains every packet the encoder
// produced for it.
func (h *handle) Submit(frame []byte, pts int64) ([]ports.Packet, error) {
	if h.closed {
		return nil, ErrClosed
	}
	want := h.width * h.height * 3 / 2
	if len(frame) != want {
		return nil, fmt.Errorf("vpxengine: frame is %d bytes, want %d", len(frame), want)
	}

	h.loadImage(frame)

	res := C.vpx_codec_encode(h.ctx, h.img, C.vpx_codec_pts_t(pts), 1, 0, h.deadline)
	if res != C.VPX_CODEC_OK {
		return nil, fmt.Errorf("vpxengine: encode: %s", codecDetail(h.ctx))
	}

	var packets []ports.Packet
	var iter C.vpx_codec_iter_t
	for {
		pkt := C.vpx_codec_get_cx_data(h.ctx, &iter)
		if pkt == nil {
			break
		}
		switch {
		case C.is_frame_packet(pkt) != 0:
			packets = append(packets, ports.Packet{
				Kind:     ports.KindFrame,
				Data:     C.GoBytes(C.frame_buf(pkt), C.int(C.frame_sz(pkt))),
				PTS:      int64(C.frame_pts(pkt)),
				Keyframe: C.is_keyframe(pkt) != 0,
			})
		case C.is_stats_packet(pkt) != 0:
			packets = append(packets, ports.Packet{
				Kind: ports.KindStats,
				Data: C.GoBytes(C.stats_buf(pkt), C.int(C.stats_sz(pkt))),
				PTS:  pts,
			})
		default:
			packets = append(packets, ports.Packet{Kind: ports.KindUnknown, PTS: pts})
		}
	}
	return packets, nil
}

// loadImage copies the packed I420 planes into the codec's image buffer.
func (h *handle) loadImage(frame []byte) {
	lumaSize := h.width * h.height
	chromaW := h.width / 2
	chromaH := h.height / 2
	chromaSize := chromaW * chromaH

	C.copy_plane(h.img, 0, (*C.uchar)(unsafe.Pointer(&frame[0])), C.int(h.width), C.int(h.height))
	C.copy_plane(h.img, 1, (*C.uchar)(unsafe.Pointer(&frame[lumaSize])), C.int(chromaW), C.int(chromaH))
	C.copy_plane(h.img, 2, (*C.uchar)(unsafe.Pointer(&frame[lumaSize+chromaSize])), C.int(chromaW), C.int(chromaH))
}

// Close destroys the codec context and frees the image. Safe to call twice.
func (h *handle) Close() error {
	if h.closed {
		return nil
	}
	h.closed = true

	var firstErr error
	if res := C.vpx_codec_destroy(h.ctx); res != C.VPX_CODEC_OK {
		firstErr = fmt.Errorf("vpxengine: destroy: %s", errString(res))
	}
	C.vpx_img_free(h.img)
	C.free(unsafe.Pointer(h.cfg))
	C.free(unsafe.Pointer(h.ctx))
	h.img = nil
	h.cfg = nil
	h.ctx = nil
	return firstErr
}

func passValue(p ports.PassMode) C.enum_vpx_enc_pass {
	switch p {
	case ports.PassFirst:
		return C.VPX_RC_FIRST_PASS
	case ports.PassLast:
		return C.VPX_RC_LAST_PASS
	default:
		return C.VPX_RC_ONE_PASS
	}
}

func deadlineValue(d ports.Deadline) C.ulong {
	switch d {
	case ports.DeadlineGood:
		return C.VPX_DL_GOOD_QUALITY
	case ports.DeadlineBest:
		return C.VPX_DL_BEST_QUALITY
	default:
		return C.VPX_DL_REALTIME
	}
}

// codecDetail reads the context's error message, including the detail
// string when the library provides one.
func codecDetail(ctx *C.vpx_codec_ctx_t) string {
	msg := C.GoString(C.vpx_codec_error(ctx))
	if detail := C.vpx_codec_error_detail(ctx); detail != nil {
		return msg + ": " + C.GoString(detail)
	}
	return msg
}

func errString(res C.vpx_codec_err_t) string {
	return C.GoString(C.vpx_codec_err_to_string(res))
}

var _ ports.EngineHandle = (*handle)(nil)

//go:build cgo

package aomengine

/*
#cgo !windows pkg-config: aom
#cgo windows CFLAGS: -IC:/vcpkg/installed/x64-windows-static/include
#cgo windows LDFLAGS: -LC:/vcpkg/installed/x64-windows-static/lib -laom -static -lpthread
#include <aom/aom_encoder.h>
#include <aom/aomcx.h>
#include <stdlib.h>
#include <string.h>

static aom_codec_iface_t* av1_iface(void) {
    return aom_codec_av1_cx();
}

// Wrapper for aom_codec_enc_init (a macro over the versioned call)
static aom_codec_err_t init_encoder(aom_codec_ctx_t *ctx, aom_codec_iface_t *iface,
                                    aom_codec_enc_cfg_t *cfg) {
    return aom_codec_enc_init_ver(ctx, iface, cfg, 0, AOM_ENCODER_ABI_VERSION);
}

// Helper functions to access packet data
static int is_frame_packet(const aom_codec_cx_pkt_t *pkt) {
    return pkt->kind == AOM_CODEC_CX_FRAME_PKT;
}

static int is_stats_packet(const aom_codec_cx_pkt_t *pkt) {
    return pkt->kind == AOM_CODEC_STATS_PKT;
}

static void* frame_buf(const aom_codec_cx_pkt_t *pkt) {
    return pkt->data.frame.buf;
}

static size_t frame_sz(const aom_codec_cx_pkt_t *pkt) {
    return pkt->data.frame.sz;
}

static aom_codec_pts_t frame_pts(const aom_codec_cx_pkt_t *pkt) {
    return pkt->data.frame.pts;
}

static int is_keyframe(const aom_codec_cx_pkt_t *pkt) {
    return (pkt->data.frame.flags & AOM_FRAME_IS_KEY) != 0;
}

static void* stats_buf(const aom_codec_cx_pkt_t *pkt) {
    return pkt->data.twopass_stats.buf;
}

static size_t stats_sz(const aom_codec_cx_pkt_t *pkt) {
    return pkt->data.twopass_stats.sz;
}

// Wrapper for aom_codec_control (it's a variadic macro)
static aom_codec_err_t set_cpu_used(aom_codec_ctx_t *ctx, int value) {
    return aom_codec_control(ctx, AOME_SET_CPUUSED, value);
}

// Copies one tightly packed plane into the image, honoring its stride.
static void copy_plane(aom_image_t *img, int plane, const unsigned char *src,
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

// Available reports whether libaom support is compiled in.
func Available() bool {
	return true
}

// Name returns the library's own description of the encoder interface.
func (e *Engine) Name() string {
	return C.GoString(C.aom_codec_iface_name(C.av1_iface()))
}

// Open allocates a codec context and frame image for cfg. libaom has no
// per-call deadline, so the deadline maps to an encoder usage profile
// plus a cpu-used speed setting at open time.
func (e *Engine) Open(cfg ports.EngineConfig) (ports.EngineHandle, error) {
	iface := C.av1_iface()
	usage, cpuUsed := tuning(cfg.Deadline)

	ctx := (*C.aom_codec_ctx_t)(C.malloc(C.sizeof_aom_codec_ctx_t))
	if ctx == nil {
		return nil, fmt.Errorf("aomengine: failed to allocate codec context")
	}
	C.memset(unsafe.Pointer(ctx), 0, C.sizeof_aom_codec_ctx_t)

	enc := (*C.aom_codec_enc_cfg_t)(C.malloc(C.sizeof_aom_codec_enc_cfg_t))
	if enc == nil {
		C.free(unsafe.Pointer(ctx))
		return nil, fmt.Errorf("aomengine: failed to allocate encoder config")
	}

	if res := C.aom_codec_enc_config_default(iface, enc, usage); res != C.AOM_CODEC_OK {
		C.free(unsafe.Pointer(enc))
		C.free(unsafe.Pointer(ctx))
		return nil, fmt.Errorf("aomengine: default config: %s", errString(res))
	}

	enc.g_w = C.uint(cfg.Width)
	enc.g_h = C.uint(cfg.Height)
	enc.g_timebase.num = C.int(cfg.TimebaseNum)
	enc.g_timebase.den = C.int(cfg.TimebaseDen)
	enc.rc_target_bitrate = C.uint(cfg.BitrateKbps)
	enc.g_lag_in_frames = 0
	enc.g_pass = passValue(cfg.Pass)

	if res := C.init_encoder(ctx, iface, enc); res != C.AOM_CODEC_OK {
		detail := codecDetail(ctx)
		C.free(unsafe.Pointer(enc))
		C.free(unsafe.Pointer(ctx))
		return nil, fmt.Errorf("aomengine: init: %s", detail)
	}

	if res := C.set_cpu_used(ctx, C.int(cpuUsed)); res != C.AOM_CODEC_OK {
		detail := codecDetail(ctx)
		C.aom_codec_destroy(ctx)
		C.free(unsafe.Pointer(enc))
		C.free(unsafe.Pointer(ctx))
		return nil, fmt.Errorf("aomengine: cpu-used: %s", detail)
	}

	img := C.aom_img_alloc(nil, C.AOM_IMG_FMT_I420, C.uint(cfg.Width), C.uint(cfg.Height), 1)
	if img == nil {
		C.aom_codec_destroy(ctx)
		C.free(unsafe.Pointer(enc))
		C.free(unsafe.Pointer(ctx))
		return nil, fmt.Errorf("aomengine: failed to allocate image buffer")
	}

	return &handle{
		ctx:    ctx,
		cfg:    enc,
		img:    img,
		width:  cfg.Width,
		height: cfg.Height,
	}, nil
}

type handle struct {
	ctx    *C.aom_codec_ctx_t
	cfg    *C.aom_codec_enc_cfg_t
	img    *C.aom_image_t
	width  int
	height int
	closed bool
}

// Submit encodes one I420 frame and drains every packet the encoder
// produced for it.
func (h *handle) Submit(frame []byte, pts int64) ([]ports.Packet, error) {
	if h.closed {
		return nil, ErrClosed
	}
	want := h.width * h.height * 3 / 2
	if len(frame) != want {
		return nil, fmt.Errorf("aomengine: frame is %d bytes, want %d", len(frame), want)
	}

	h.loadImage(frame)

	res := C.aom_codec_encode(h.ctx, h.img, C.aom_codec_pts_t(pts), 1, 0)
	if res != C.AOM_CODEC_OK {
		return nil, fmt.Errorf("aomengine: encode: %s", codecDetail(h.ctx))
	}

	var packets []ports.Packet
	var iter C.aom_codec_iter_t
	for {
		pkt := C.aom_codec_get_cx_data(h.ctx, &iter)
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
	if res := C.aom_codec_destroy(h.ctx); res != C.AOM_CODEC_OK {
		firstErr = fmt.Errorf("aomengine: destroy: %s", errString(res))
	}
	C.aom_img_free(h.img)
	C.free(unsafe.Pointer(h.cfg))
	C.free(unsafe.Pointer(h.ctx))
	h.img = nil
	h.cfg = nil
	h.ctx = nil
	return firstErr
}

// tuning maps a deadline to libaom's usage profile and cpu-used speed.
func tuning(d ports.Deadline) (C.uint, int) {
	switch d {
	case ports.DeadlineGood:
		return C.AOM_USAGE_GOOD_QUALITY, 4
	case ports.DeadlineBest:
		return C.AOM_USAGE_GOOD_QUALITY, 0
	default:
		return C.AOM_USAGE_REALTIME, 8
	}
}

func passValue(p ports.PassMode) C.enum_aom_enc_pass {
	switch p {
	case ports.PassFirst:
		return C.AOM_RC_FIRST_PASS
	case ports.PassLast:
		return C.AOM_RC_SECOND_PASS
	default:
		return C.AOM_RC_ONE_PASS
	}
}

func codecDetail(ctx *C.aom_codec_ctx_t) string {
	msg := C.GoString(C.aom_codec_error(ctx))
	if detail := C.aom_codec_error_detail(ctx); detail != nil {
		return msg + ": " + C.GoString(detail)
	}
	return msg
}

func errString(res C.aom_codec_err_t) string {
	return C.GoString(C.aom_codec_err_to_string(res))
}

var _ ports.EngineHandle = (*handle)(nil)

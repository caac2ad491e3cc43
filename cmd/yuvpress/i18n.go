// Package main provides localization for the yuvpress CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Root command
		"Compress raw 4:2:0 video streams into IVF or MP4 files": "生の4:2:0映像ストリームをIVFまたはMP4ファイルに圧縮",

		// Encode command
		"Encode a raw video stream into a container file": "生の映像ストリームをコンテナファイルにエンコード",

		// Encode flags
		"Output file path (.ivf or .mp4)":                     "出力ファイルパス (.ivf または .mp4)",
		"Frame width in pixels":                               "フレーム幅 (ピクセル)",
		"Frame height in pixels":                              "フレーム高さ (ピクセル)",
		"Frame rate, integer or fraction (e.g. 30000/1001)":   "フレームレート。整数または分数 (例: 30000/1001)",
		"Base target bitrate in kbps, scaled by frame size":   "基準ビットレート (kbps)。フレームサイズに応じてスケール",
		"Codec (vp8, vp9 or av1)":                             "コーデック (vp8, vp9, av1)",
		"Container (auto, ivf or mp4)":                        "コンテナ (auto, ivf, mp4)",
		"Rate-control pass (one, first or last)":              "レート制御パス (one, first, last)",
		"Encoding deadline (realtime, good or best)":          "エンコードデッドライン (realtime, good, best)",
		"Fail instead of falling back to another codec":       "別コーデックへのフォールバックを行わず失敗させる",
		"Encode a built-in test pattern instead of reading input": "入力の代わりに内蔵テストパターンをエンコード",
		"Number of test pattern frames":                       "テストパターンのフレーム数",
		"Enable debug output":                                 "デバッグ出力を有効化",
		"Directory for debug output":                          "デバッグ出力ディレクトリ",
		"Write a Markdown summary to this path":               "Markdownサマリーをこのパスに書き込む",
		"Load settings from a YAML file":                      "YAMLファイルから設定を読み込む",
		"Log level (debug, info, warn, error)":                "ログレベル (debug, info, warn, error)",
		"Suppress all output":                                 "すべての出力を抑制",

		// Version command
		"Show version information": "バージョン情報を表示",
		"yuvpress version %s":      "yuvpress バージョン %s",

		// Inspect command
		"Show container, codec and stream details of a media file": "メディアファイルのコンテナ・コーデック・ストリーム詳細を表示",
		"Container: %s":  "コンテナ: %s",
		"Codec: %s":      "コーデック: %s",
		"Resolution: %s": "解像度: %s",
		"Timebase: %s":   "タイムベース: %s",
		"Frames: %d":     "フレーム数: %d",
	})
}

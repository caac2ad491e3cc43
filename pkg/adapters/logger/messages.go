package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Run level messages (info)
		"Starting encode":               "エンコードを開始します",
		"Using engine %s":               "エンジン %s を使用します",
		"Processed %d frames":           "%d フレームを処理しました",
		"Output saved to %s":            "出力を %s に保存しました",
		"Summary saved to %s":           "サマリーを %s に保存しました",
		"Interrupted, shutting down...": "中断されました。シャットダウン中...",

		// Session messages (debug)
		"Session ready: %s at %d kbps":      "セッション準備完了: %s, %d kbps",
		"Session finalized after %d frames": "セッションを終了しました (%d フレーム)",

		// Warnings
		"Discarding trailing partial frame; check width and height": "末尾の不完全なフレームを破棄します。幅と高さを確認してください",
		"Unexpected %s packet from engine":                          "エンジンから予期しない %s パケットを受信しました",
		"Failed to release encoder: %s":                             "エンコーダの解放に失敗しました: %s",
		"Failed to write summary: %s":                               "サマリーの書き込みに失敗しました: %s",
		"%s encoder not available, falling back to AV1":             "%s エンコーダが利用できないため AV1 にフォールバックします",
		"AV1 encoder not available, falling back to VP8":            "AV1 エンコーダが利用できないため VP8 にフォールバックします",

		// Errors
		"Failed to set up encoder: %s":       "エンコーダの初期化に失敗しました: %s",
		"Failed to start output stream: %s":  "出力ストリームの開始に失敗しました: %s",
		"Failed to read frame: %s":           "フレームの読み込みに失敗しました: %s",
		"Failed to encode frame %d: %s":      "フレーム %d のエンコードに失敗しました: %s",
		"Failed to write packet: %s":         "パケットの書き込みに失敗しました: %s",
		"Failed to finalize output: %s":      "出力の確定に失敗しました: %s",
		"Failed to write output: %s":         "出力の書き込みに失敗しました: %s",
	})
}

// Package config はマーケットプロキシの設定を読み込む。
//
// 設定はデフォルト値、YAMLファイル（任意）、環境変数の順に上書きされる。
// XIVAPIの秘密鍵もここで読み込み、起動時にクライアントへ注入する。
package config
